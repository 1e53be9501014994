//go:generate go run go.uber.org/mock/mockgen -source=registry_service.go -destination=../mocks/mock_registry_service.go -package=mocks
package services

import (
	"anonymity-service/domain"
	"anonymity-service/runtime"
	"context"
)

type IRegistryService interface {
	Initialize(ctx context.Context, caller domain.Principal) error
	PauseService(ctx context.Context, caller domain.Principal) error
	ResumeService(ctx context.Context, caller domain.Principal) error
	SendAnonymousMessage(ctx context.Context, content string) (uint64, error)
	SendBulkMessages(ctx context.Context, contents []string) (domain.BulkReceipt, error)
	GetMessage(ctx context.Context, id uint64) (domain.Message, bool, error)
	GetMessageCount(ctx context.Context) (uint64, error)
	DoesMessageExist(ctx context.Context, id uint64) (bool, error)
	GetLastMessageID(ctx context.Context) (uint64, error)
	GetServiceStatus(ctx context.Context) (domain.State, error)
}

type RegistryService struct {
	host *runtime.Host
}

func NewRegistryService(host *runtime.Host) *RegistryService {
	return &RegistryService{host: host}
}

func (s *RegistryService) Initialize(ctx context.Context, caller domain.Principal) error {
	return s.host.Initialize(ctx, caller)
}

func (s *RegistryService) PauseService(ctx context.Context, caller domain.Principal) error {
	return s.host.PauseService(ctx, caller)
}

func (s *RegistryService) ResumeService(ctx context.Context, caller domain.Principal) error {
	return s.host.ResumeService(ctx, caller)
}

func (s *RegistryService) SendAnonymousMessage(ctx context.Context, content string) (uint64, error) {
	return s.host.SendAnonymousMessage(ctx, content)
}

// SendBulkMessages accepts the contents as a list so that a wrong count is
// reported by the registry itself instead of the transport.
func (s *RegistryService) SendBulkMessages(ctx context.Context, contents []string) (domain.BulkReceipt, error) {
	return s.host.SendBulk(ctx, contents)
}

func (s *RegistryService) GetMessage(ctx context.Context, id uint64) (domain.Message, bool, error) {
	return s.host.GetMessage(ctx, id)
}

func (s *RegistryService) GetMessageCount(ctx context.Context) (uint64, error) {
	return s.host.GetMessageCount(ctx)
}

func (s *RegistryService) DoesMessageExist(ctx context.Context, id uint64) (bool, error) {
	return s.host.DoesMessageExist(ctx, id)
}

func (s *RegistryService) GetLastMessageID(ctx context.Context) (uint64, error) {
	return s.host.GetLastMessageID(ctx)
}

func (s *RegistryService) GetServiceStatus(ctx context.Context) (domain.State, error) {
	return s.host.GetServiceStatus(ctx)
}
