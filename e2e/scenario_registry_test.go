package e2e

import (
	"anonymity-service/domain"
	"anonymity-service/errors"
	"anonymity-service/infrastructure/grpc/client"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testRegistrySuite struct {
	BaseGrpcSuite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, &testRegistrySuite{})
}

// TestAnonymousSubmissionFlow runs against a live registry which may already
// hold messages, so identifiers are checked relative to the starting count.
func (s *testRegistrySuite) TestAnonymousSubmissionFlow() {
	marker := uuid.New().String()
	var start uint64

	s.Run("Step 0: Registry is open for writes", func() {
		s.WithRegistry("Initialize and resume", func(ctx context.Context, registry *client.RegistryClient) {
			err := registry.Initialize(ctx)
			if err != nil {
				s.Require().ErrorIs(err, errors.ErrAlreadyInitialized)
			}
			s.Require().NoError(registry.ResumeService(ctx))

			state, err := registry.GetServiceStatus(ctx)
			s.Require().NoError(err)
			s.Require().Equal(domain.StatusActive, state.Status())
			start = state.MessageCount
		})
	})

	s.Run("Step 1: Anonymous single and bulk submissions", func() {
		s.WithRegistry("Send messages", func(ctx context.Context, registry *client.RegistryClient) {
			id, err := registry.SendAnonymousMessage(ctx, fmt.Sprintf("single message %s", marker))
			s.Require().NoError(err)
			s.Require().Equal(start, id)

			receipt, err := registry.SendBulkMessages(ctx,
				fmt.Sprintf("first bulk %s", marker),
				fmt.Sprintf("second bulk %s", marker))
			s.Require().NoError(err)
			s.Require().Equal(domain.BulkReceipt{FirstID: start + 1, SecondID: start + 2}, receipt)

			_, err = registry.SendAnonymousMessage(ctx, "short")
			s.Require().ErrorIs(err, errors.ErrInvalidMessageLength)
		})
	})

	s.Run("Step 2: Messages are readable and carry no sender", func() {
		s.WithRegistry("Read back", func(ctx context.Context, registry *client.RegistryClient) {
			msg, found, err := registry.GetMessage(ctx, start+2)
			s.Require().NoError(err)
			s.Require().True(found)
			s.Require().Equal(fmt.Sprintf("second bulk %s", marker), msg.Content)
			s.Require().Nil(msg.Sender)

			last, err := registry.GetLastMessageID(ctx)
			s.Require().NoError(err)
			s.Require().Equal(start+2, last)
		})
	})

	s.Run("Step 3: Pause blocks writes but not reads", func() {
		s.WithRegistry("Pause and resume", func(ctx context.Context, registry *client.RegistryClient) {
			s.Require().NoError(registry.PauseService(ctx))
			_, err := registry.SendAnonymousMessage(ctx, fmt.Sprintf("rejected message %s", marker))
			s.Require().ErrorIs(err, errors.ErrNotInitialized)

			count, err := registry.GetMessageCount(ctx)
			s.Require().NoError(err)
			s.Require().Equal(start+3, count)

			s.Require().NoError(registry.ResumeService(ctx))
		})
	})
}
