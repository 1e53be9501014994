package test

import (
	"anonymity-service/domain"
	"anonymity-service/errors"
	"anonymity-service/registry"
	"anonymity-service/repositories"
	"anonymity-service/runtime"
	"anonymity-service/runtime/workers"
	"anonymity-service/services"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const owner domain.Principal = "deployer"

func Test_Scenario(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	// Reduced to 16 Mo for testing
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	policy := registry.DefaultPolicy()
	policy.MaxMessages = lo.ToPtr(uint64(50))
	host := runtime.NewHost(log, repositories.NewRegistryRepository(db, log), policy)
	_, err = host.Deploy(owner)
	req.NoError(err)
	service := services.NewRegistryService(host)

	// 1. Status reporter runs under supervision for the whole scenario
	supervisor := workers.NewSupervisor(log, 50*time.Millisecond)
	supervisor.Add(workers.NewStatusReporter(log, host, 10*time.Millisecond))
	supervisorDone := make(chan struct{})
	go func() {
		defer close(supervisorDone)
		supervisor.Run(ctx)
	}()
	t.Cleanup(func() {
		supervisor.Stop()
		<-supervisorDone
	})

	req.NoError(service.Initialize(ctx, owner))

	// 2. Many anonymous senders race for identifiers, some of them with invalid content
	const senders = 30
	var wg sync.WaitGroup
	ids := make(chan uint64, senders)
	failures := make(chan error, senders)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			content := fmt.Sprintf("anonymous message number %d", i)
			if i%5 == 0 {
				content = "tiny"
			}
			id, err := service.SendAnonymousMessage(ctx, content)
			if err != nil {
				failures <- err
				return
			}
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)
	close(failures)

	for err := range failures {
		req.ErrorIs(err, errors.ErrInvalidMessageLength)
	}

	// 3. Identifiers are dense and unique
	assigned := lo.ChannelToSlice(ids)
	req.Len(assigned, 24)
	req.ElementsMatch(lo.Range(24), lo.Map(assigned, func(id uint64, _ int) int { return int(id) }))

	count, err := service.GetMessageCount(ctx)
	req.NoError(err)
	req.Equal(uint64(24), count)

	// 4. Bulk submissions fill the store up to its limit, never beyond
	for i := 0; i < 13; i++ {
		_, err := service.SendBulkMessages(ctx, []string{
			fmt.Sprintf("bulk message %d-a", i),
			fmt.Sprintf("bulk message %d-b", i),
		})
		req.NoError(err)
	}
	_, err = service.SendBulkMessages(ctx, []string{"one more bulk message", "and its second part"})
	req.ErrorIs(err, errors.ErrMessageLimitExceeded)
	_, err = service.SendAnonymousMessage(ctx, "one message too many")
	req.ErrorIs(err, errors.ErrMessageLimitExceeded)

	last, err := service.GetLastMessageID(ctx)
	req.NoError(err)
	req.Equal(uint64(49), last)

	state, err := service.GetServiceStatus(ctx)
	req.NoError(err)
	req.Equal(domain.StatusActive, state.Status())
	req.Equal(uint64(50), state.MessageCount)
}
