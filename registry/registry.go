// Package registry implements the message registry state machine.
//
// A Registry wraps one call's view of the shared state: the host loads the
// state, builds a Registry over it and a store bound to the same transaction,
// runs exactly one operation, then persists the state if the call succeeded.
// Every operation validates before it mutates, so a failed call leaves both the
// state and the store untouched.
package registry

import (
	"anonymity-service/domain"
	"anonymity-service/errors"
	"fmt"
)

// MessageStore is the append-only storage behind the registry.
type MessageStore interface {
	// Append stores msg. Its ID is always the current message count.
	Append(msg domain.Message) error
	// Get returns the message stored under id, if any.
	Get(id uint64) (domain.Message, bool, error)
}

// Policy holds the tunable limits of the registry.
type Policy struct {
	Content domain.ContentRules
	// MaxMessages caps the store size. Nil means unbounded.
	MaxMessages *uint64
}

func DefaultPolicy() Policy {
	return Policy{Content: domain.DefaultContentRules()}
}

type Registry struct {
	state  *domain.State
	store  MessageStore
	policy Policy
}

func New(state *domain.State, store MessageStore, policy Policy) *Registry {
	return &Registry{state: state, store: store, policy: policy}
}

// State returns a copy of the current state.
func (r *Registry) State() domain.State {
	return *r.state
}

// Initialize opens the registry for writes. Only the owner may call it, once.
func (r *Registry) Initialize(caller domain.Principal) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if r.state.Initialized {
		return errors.ErrAlreadyInitialized
	}
	r.state.Initialized = true
	r.state.Paused = false
	return nil
}

func (r *Registry) PauseService(caller domain.Principal) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	r.state.Paused = true
	return nil
}

func (r *Registry) ResumeService(caller domain.Principal) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	r.state.Paused = false
	return nil
}

// SendAnonymousMessage stores content and returns its identifier.
func (r *Registry) SendAnonymousMessage(content string) (uint64, error) {
	ids, err := r.appendAll(content)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// SendBulkMessages stores both contents or neither.
func (r *Registry) SendBulkMessages(first, second string) (domain.BulkReceipt, error) {
	return r.SendBulk([]string{first, second})
}

// SendBulk is SendBulkMessages over a list. Any list that is not a pair is
// rejected with ErrInvalidMessageCount, after the service switch.
func (r *Registry) SendBulk(contents []string) (domain.BulkReceipt, error) {
	if err := r.requireWritable(); err != nil {
		return domain.BulkReceipt{}, err
	}
	if len(contents) != domain.MaxBatchSize {
		return domain.BulkReceipt{}, errors.ErrInvalidMessageCount
	}
	ids, err := r.appendAll(contents...)
	if err != nil {
		return domain.BulkReceipt{}, err
	}
	return domain.BulkReceipt{FirstID: ids[0], SecondID: ids[1]}, nil
}

// GetMessage returns the message with the given id. Absence is not an error.
func (r *Registry) GetMessage(id uint64) (domain.Message, bool, error) {
	if !r.DoesMessageExist(id) {
		return domain.Message{}, false, nil
	}
	msg, ok, err := r.store.Get(id)
	if err != nil {
		return domain.Message{}, false, fmt.Errorf("get message %d: %w", id, err)
	}
	return msg, ok, nil
}

func (r *Registry) GetMessageCount() uint64 {
	return r.state.MessageCount
}

func (r *Registry) DoesMessageExist(id uint64) bool {
	return id < r.state.MessageCount
}

// GetLastMessageID fails with ErrMessageNotFound while the store is empty.
func (r *Registry) GetLastMessageID() (uint64, error) {
	if r.state.MessageCount == 0 {
		return 0, errors.ErrMessageNotFound
	}
	return r.state.MessageCount - 1, nil
}

func (r *Registry) requireOwner(caller domain.Principal) error {
	if caller != r.state.Owner {
		return errors.ErrOwnerOnly
	}
	return nil
}

// requireWritable is the service switch shared by every write path.
func (r *Registry) requireWritable() error {
	if !r.state.Writable() {
		return errors.ErrNotInitialized
	}
	return nil
}

// appendAll validates every content first, then assigns consecutive ids in
// submission order. The counter only moves once all appends succeeded.
func (r *Registry) appendAll(contents ...string) ([]uint64, error) {
	if err := r.requireWritable(); err != nil {
		return nil, err
	}
	if len(contents) == 0 || len(contents) > domain.MaxBatchSize {
		return nil, errors.ErrInvalidMessageCount
	}
	for i, content := range contents {
		if err := r.policy.Content.Validate(content); err != nil {
			return nil, fmt.Errorf("%w: message %d: %v", errors.ErrInvalidMessageLength, i+1, err)
		}
	}
	n := uint64(len(contents))
	if limit := r.policy.MaxMessages; limit != nil && r.state.MessageCount+n > *limit {
		return nil, errors.ErrMessageLimitExceeded
	}

	next := r.state.MessageCount
	ids := make([]uint64, 0, n)
	for i, content := range contents {
		id := next + uint64(i)
		if err := r.store.Append(domain.Message{ID: id, Content: content}); err != nil {
			return nil, fmt.Errorf("append message %d: %w", id, err)
		}
		ids = append(ids, id)
	}
	r.state.MessageCount = next + n
	return ids, nil
}
