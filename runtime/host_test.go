package runtime

import (
	"anonymity-service/domain"
	"anonymity-service/errors"
	"anonymity-service/registry"
	"anonymity-service/repositories"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const (
	deployer domain.Principal = "deployer"
	wallet1  domain.Principal = "wallet_1"
	wallet2  domain.Principal = "wallet_2"
)

const validContent = "This is a valid test message with sufficient length"

func newHost(t *testing.T, policy registry.Policy) (*Host, *badger.DB) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	host := NewHost(slog.Default(), repositories.NewRegistryRepository(db, slog.Default()), policy)
	_, err = host.Deploy(deployer)
	require.NoError(t, err)
	return host, db
}

func Test_Deploy_Keeps_First_Owner(t *testing.T) {
	req := require.New(t)
	host, _ := newHost(t, registry.DefaultPolicy())

	state, err := host.Deploy(wallet1)

	req.NoError(err)
	req.Equal(deployer, state.Owner)
	req.ErrorIs(host.Initialize(context.Background(), wallet1), errors.ErrOwnerOnly)
}

func Test_Query_Before_Deploy(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()
	host := NewHost(slog.Default(), repositories.NewRegistryRepository(db, slog.Default()), registry.DefaultPolicy())

	_, err = host.GetMessageCount(context.Background())

	req.ErrorIs(err, errors.ErrStateNotFound)
}

func Test_Host_Lifecycle(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	host, _ := newHost(t, registry.DefaultPolicy())

	_, err := host.SendAnonymousMessage(ctx, validContent)
	req.ErrorIs(err, errors.ErrNotInitialized)

	req.NoError(host.Initialize(ctx, deployer))
	req.ErrorIs(host.Initialize(ctx, deployer), errors.ErrAlreadyInitialized)

	id, err := host.SendAnonymousMessage(ctx, validContent)
	req.NoError(err)
	req.Equal(uint64(0), id)

	receipt, err := host.SendBulkMessages(ctx, "first bulk message", "second bulk message")
	req.NoError(err)
	req.Equal(domain.BulkReceipt{FirstID: 1, SecondID: 2}, receipt)

	req.NoError(host.PauseService(ctx, deployer))
	_, err = host.SendAnonymousMessage(ctx, validContent)
	req.ErrorIs(err, errors.ErrNotInitialized)

	state, err := host.GetServiceStatus(ctx)
	req.NoError(err)
	req.Equal(domain.StatusPaused, state.Status())

	// Reads are available while paused
	count, err := host.GetMessageCount(ctx)
	req.NoError(err)
	req.Equal(uint64(3), count)

	req.NoError(host.ResumeService(ctx, deployer))
	id, err = host.SendAnonymousMessage(ctx, validContent)
	req.NoError(err)
	req.Equal(uint64(3), id)

	last, err := host.GetLastMessageID(ctx)
	req.NoError(err)
	req.Equal(uint64(3), last)

	exists, err := host.DoesMessageExist(ctx, 3)
	req.NoError(err)
	req.True(exists)
	exists, err = host.DoesMessageExist(ctx, 4)
	req.NoError(err)
	req.False(exists)

	msg, found, err := host.GetMessage(ctx, 2)
	req.NoError(err)
	req.True(found)
	req.Equal("second bulk message", msg.Content)
	req.Nil(msg.Sender)
}

func Test_Failed_Bulk_Leaves_Store_Untouched(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	host, _ := newHost(t, registry.DefaultPolicy())
	req.NoError(host.Initialize(ctx, deployer))

	_, err := host.SendBulkMessages(ctx, "first bulk message", "no")
	req.ErrorIs(err, errors.ErrInvalidMessageLength)

	count, err := host.GetMessageCount(ctx)
	req.NoError(err)
	req.Zero(count)
	_, found, err := host.GetMessage(ctx, 0)
	req.NoError(err)
	req.False(found)
	_, err = host.GetLastMessageID(ctx)
	req.ErrorIs(err, errors.ErrMessageNotFound)
}

func Test_State_Survives_Reopen(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	open := func() (*Host, *badger.DB) {
		db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
		req.NoError(err)
		host := NewHost(slog.Default(), repositories.NewRegistryRepository(db, slog.Default()), registry.DefaultPolicy())
		_, err = host.Deploy(deployer)
		req.NoError(err)
		return host, db
	}

	host, db := open()
	req.NoError(host.Initialize(ctx, deployer))
	_, err := host.SendAnonymousMessage(ctx, validContent)
	req.NoError(err)
	req.NoError(db.Close())

	host, db = open()
	defer db.Close()
	state, err := host.GetServiceStatus(ctx)
	req.NoError(err)
	req.Equal(domain.State{Owner: deployer, Initialized: true, MessageCount: 1}, state)
	id, err := host.SendAnonymousMessage(ctx, validContent)
	req.NoError(err)
	req.Equal(uint64(1), id)
}

func Test_Concurrent_Sends_Get_Dense_Ids(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	policy := registry.DefaultPolicy()
	policy.MaxMessages = lo.ToPtr(uint64(1000))
	host, _ := newHost(t, policy)
	req.NoError(host.Initialize(ctx, deployer))

	const senders = 20
	var wg sync.WaitGroup
	ids := make(chan uint64, senders*2)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			receipt, err := host.SendBulkMessages(ctx,
				fmt.Sprintf("first message of sender %d", i),
				fmt.Sprintf("second message of sender %d", i))
			if err != nil {
				return
			}
			ids <- receipt.FirstID
			ids <- receipt.SecondID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		req.False(seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	req.Len(seen, senders*2)
	for id := uint64(0); id < senders*2; id++ {
		req.True(seen[id], "id %d missing", id)
	}
}

func Test_Canceled_Context_Is_Not_Executed(t *testing.T) {
	req := require.New(t)
	host, _ := newHost(t, registry.DefaultPolicy())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req.ErrorIs(host.Initialize(ctx, deployer), context.Canceled)

	state, err := host.GetServiceStatus(context.Background())
	req.NoError(err)
	req.False(state.Initialized)
}

func Test_Execute_Refuses_Reads(t *testing.T) {
	req := require.New(t)
	host, _ := newHost(t, registry.DefaultPolicy())

	err := host.Execute(context.Background(), domain.OpGetMessageCount, func(r *registry.Registry) error {
		return nil
	})

	req.Error(err)
	_, hasCode := errors.CodeOf(err)
	req.False(hasCode)
}
