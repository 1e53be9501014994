// Package runtime is the execution environment of the registry.
// It owns the registry state across calls, serializes them and makes each one
// atomic, without containing any registry rule itself.
package runtime

import (
	"anonymity-service/domain"
	"anonymity-service/errors"
	"anonymity-service/registry"
	"anonymity-service/repositories"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
)

type Host struct {
	mu         sync.Mutex
	log        *slog.Logger
	repository repositories.IRegistryRepository
	policy     registry.Policy
}

func NewHost(log *slog.Logger, repository repositories.IRegistryRepository, policy registry.Policy) *Host {
	return &Host{log: log, repository: repository, policy: policy}
}

// Deploy creates the registry state for owner on first boot.
// An already deployed registry keeps its original owner.
func (h *Host) Deploy(owner domain.Principal) (domain.State, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var state domain.State
	err := h.repository.Update(func(store repositories.RegistryStore) error {
		loaded, err := store.LoadState()
		switch {
		case err == nil:
			state = loaded
			return nil
		case stderrors.Is(err, errors.ErrStateNotFound):
			state = domain.NewState(owner)
			return store.SaveState(state)
		default:
			return err
		}
	})
	if err != nil {
		return domain.State{}, fmt.Errorf("deploy registry: %w", err)
	}
	if state.Owner != owner {
		h.log.Warn("Registry already deployed with another owner, keeping it",
			"owner", state.Owner, "configured", owner)
	}
	h.log.Info("Registry deployed", "owner", state.Owner, "status", state.Status(), "messages", state.MessageCount)
	return state, nil
}

// Execute runs fn as one atomic call. State and messages are committed only
// when fn succeeds; any error discards the whole transaction.
func (h *Host) Execute(ctx context.Context, op domain.Operation, fn func(r *registry.Registry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if op.ReadOnly() {
		return fmt.Errorf("%s is a read, run it with Query", op)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.repository.Update(func(store repositories.RegistryStore) error {
		state, err := store.LoadState()
		if err != nil {
			return err
		}
		if err = fn(registry.New(&state, store, h.policy)); err != nil {
			return err
		}
		return store.SaveState(state)
	})
	h.logOutcome(op, err)
	return err
}

// Query runs fn against a read-only snapshot of the registry.
func (h *Host) Query(ctx context.Context, fn func(r *registry.Registry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return h.repository.View(func(store repositories.RegistryStore) error {
		state, err := store.LoadState()
		if err != nil {
			return err
		}
		return fn(registry.New(&state, store, h.policy))
	})
}

func (h *Host) Initialize(ctx context.Context, caller domain.Principal) error {
	return h.Execute(ctx, domain.OpInitialize, func(r *registry.Registry) error {
		return r.Initialize(caller)
	})
}

func (h *Host) PauseService(ctx context.Context, caller domain.Principal) error {
	return h.Execute(ctx, domain.OpPauseService, func(r *registry.Registry) error {
		return r.PauseService(caller)
	})
}

func (h *Host) ResumeService(ctx context.Context, caller domain.Principal) error {
	return h.Execute(ctx, domain.OpResumeService, func(r *registry.Registry) error {
		return r.ResumeService(caller)
	})
}

// SendAnonymousMessage never hands the caller to the registry.
func (h *Host) SendAnonymousMessage(ctx context.Context, content string) (uint64, error) {
	var id uint64
	err := h.Execute(ctx, domain.OpSendMessage, func(r *registry.Registry) error {
		var err error
		id, err = r.SendAnonymousMessage(content)
		return err
	})
	return id, err
}

func (h *Host) SendBulkMessages(ctx context.Context, first, second string) (domain.BulkReceipt, error) {
	return h.SendBulk(ctx, []string{first, second})
}

func (h *Host) SendBulk(ctx context.Context, contents []string) (domain.BulkReceipt, error) {
	var receipt domain.BulkReceipt
	err := h.Execute(ctx, domain.OpSendBulkMessages, func(r *registry.Registry) error {
		var err error
		receipt, err = r.SendBulk(contents)
		return err
	})
	return receipt, err
}

func (h *Host) GetMessage(ctx context.Context, id uint64) (domain.Message, bool, error) {
	var msg domain.Message
	var found bool
	err := h.Query(ctx, func(r *registry.Registry) error {
		var err error
		msg, found, err = r.GetMessage(id)
		return err
	})
	return msg, found, err
}

func (h *Host) GetMessageCount(ctx context.Context) (uint64, error) {
	var count uint64
	err := h.Query(ctx, func(r *registry.Registry) error {
		count = r.GetMessageCount()
		return nil
	})
	return count, err
}

func (h *Host) DoesMessageExist(ctx context.Context, id uint64) (bool, error) {
	var exists bool
	err := h.Query(ctx, func(r *registry.Registry) error {
		exists = r.DoesMessageExist(id)
		return nil
	})
	return exists, err
}

func (h *Host) GetLastMessageID(ctx context.Context) (uint64, error) {
	var id uint64
	err := h.Query(ctx, func(r *registry.Registry) error {
		var err error
		id, err = r.GetLastMessageID()
		return err
	})
	return id, err
}

func (h *Host) GetServiceStatus(ctx context.Context) (domain.State, error) {
	var state domain.State
	err := h.Query(ctx, func(r *registry.Registry) error {
		state = r.State()
		return nil
	})
	return state, err
}

// logOutcome never logs content nor the caller of a send.
func (h *Host) logOutcome(op domain.Operation, err error) {
	if err == nil {
		h.log.Debug("Call committed", "operation", op)
		return
	}
	if code, ok := errors.CodeOf(err); ok {
		h.log.Info("Call rejected", "operation", op, "code", uint32(code), "reason", code.String())
		return
	}
	h.log.Error("Call failed", "operation", op, "error", err)
}
