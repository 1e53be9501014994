package repositories

import (
	"anonymity-service/domain"
	"anonymity-service/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	stateOwnerKey       = "state:owner"
	stateInitializedKey = "state:initialized"
	statePausedKey      = "state:paused"
	stateCountKey       = "state:count"
	messagePrefix       = "msg:"
)

// RegistryStore is one transaction's view of the registry data.
type RegistryStore interface {
	LoadState() (domain.State, error)
	SaveState(state domain.State) error
	Append(msg domain.Message) error
	Get(id uint64) (domain.Message, bool, error)
}

type IRegistryRepository interface {
	// Update runs fn in a read-write transaction, committed only if fn returns nil.
	Update(fn func(store RegistryStore) error) error
	// View runs fn in a read-only transaction.
	View(fn func(store RegistryStore) error) error
	// Scan walks stored messages in identifier order.
	Scan(fn func(msg domain.Message) error) error
}

type RegistryRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewRegistryRepository(db *badger.DB, log *slog.Logger) RegistryRepository {
	return RegistryRepository{db: db, log: log}
}

func (r RegistryRepository) Update(fn func(store RegistryStore) error) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return fn(txnStore{txn: txn})
	})
}

func (r RegistryRepository) View(fn func(store RegistryStore) error) error {
	return r.db.View(func(txn *badger.Txn) error {
		return fn(txnStore{txn: txn})
	})
}

// Scan iterates over the "msg:" prefix. Keys are zero padded so the
// lexicographical order of badger matches the numeric order of identifiers.
func (r RegistryRepository) Scan(fn func(msg domain.Message) error) error {
	return r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id, err := strconv.ParseUint(string(item.Key()[len(prefix):]), 10, 64)
			if err != nil {
				r.log.Warn("Skipping malformed message key", "key", string(item.Key()))
				continue
			}
			var content wrapperspb.StringValue
			err = item.Value(func(val []byte) error {
				return proto.Unmarshal(val, &content)
			})
			if err != nil {
				return fmt.Errorf("decode message %d: %w", id, err)
			}
			if err = fn(domain.Message{ID: id, Content: content.GetValue()}); err != nil {
				return err
			}
		}
		return nil
	})
}

// txnStore binds the store operations to a single badger transaction.
type txnStore struct {
	txn *badger.Txn
}

// LoadState returns errors.ErrStateNotFound until the registry has been deployed.
func (s txnStore) LoadState() (domain.State, error) {
	var owner wrapperspb.StringValue
	found, err := s.get([]byte(stateOwnerKey), &owner)
	if err != nil {
		return domain.State{}, err
	}
	if !found {
		return domain.State{}, errors.ErrStateNotFound
	}

	var initialized, paused wrapperspb.BoolValue
	var count wrapperspb.UInt64Value
	if _, err = s.get([]byte(stateInitializedKey), &initialized); err != nil {
		return domain.State{}, err
	}
	if _, err = s.get([]byte(statePausedKey), &paused); err != nil {
		return domain.State{}, err
	}
	if _, err = s.get([]byte(stateCountKey), &count); err != nil {
		return domain.State{}, err
	}

	return domain.State{
		Owner:        domain.Principal(owner.GetValue()),
		Initialized:  initialized.GetValue(),
		Paused:       paused.GetValue(),
		MessageCount: count.GetValue(),
	}, nil
}

func (s txnStore) SaveState(state domain.State) error {
	entries := []struct {
		key   string
		value proto.Message
	}{
		{stateOwnerKey, wrapperspb.String(state.Owner.String())},
		{stateInitializedKey, wrapperspb.Bool(state.Initialized)},
		{statePausedKey, wrapperspb.Bool(state.Paused)},
		{stateCountKey, wrapperspb.UInt64(state.MessageCount)},
	}
	for _, e := range entries {
		if err := s.set([]byte(e.key), e.value); err != nil {
			return err
		}
	}
	return nil
}

// Append refuses to overwrite an identifier that is already taken.
func (s txnStore) Append(msg domain.Message) error {
	key := messageKey(msg.ID)
	if _, err := s.txn.Get(key); err == nil {
		return fmt.Errorf("message %d already stored", msg.ID)
	} else if !stderrors.Is(err, badger.ErrKeyNotFound) {
		return err
	}
	return s.set(key, wrapperspb.String(msg.Content))
}

func (s txnStore) Get(id uint64) (domain.Message, bool, error) {
	var content wrapperspb.StringValue
	found, err := s.get(messageKey(id), &content)
	if err != nil || !found {
		return domain.Message{}, false, err
	}
	return domain.Message{ID: id, Content: content.GetValue()}, true, nil
}

func (s txnStore) get(key []byte, into proto.Message) (bool, error) {
	item, err := s.txn.Get(key)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	err = item.Value(func(val []byte) error {
		return proto.Unmarshal(val, into)
	})
	if err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s txnStore) set(key []byte, value proto.Message) error {
	bytes, err := proto.Marshal(value)
	if err != nil {
		return err
	}
	return s.txn.Set(key, bytes)
}

// messageKey is formatted as "msg:{id}" with 20 digits of zero padding,
// enough for any uint64.
func messageKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", messagePrefix, id))
}
