package server

import (
	"anonymity-service/auth"
	"anonymity-service/domain"
	"anonymity-service/errors"
	"anonymity-service/services"
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type RegistryServer struct {
	log     *slog.Logger
	service services.IRegistryService
}

func NewRegistryServer(log *slog.Logger, service services.IRegistryService) *RegistryServer {
	return &RegistryServer{log: log, service: service}
}

func (s *RegistryServer) Initialize(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return s.admin(ctx, s.service.Initialize)
}

func (s *RegistryServer) PauseService(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return s.admin(ctx, s.service.PauseService)
}

func (s *RegistryServer) ResumeService(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return s.admin(ctx, s.service.ResumeService)
}

func (s *RegistryServer) SendAnonymousMessage(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error) {
	id, err := s.service.SendAnonymousMessage(ctx, req.GetValue())
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return wrapperspb.UInt64(id), nil
}

func (s *RegistryServer) SendBulkMessages(ctx context.Context, req *structpb.ListValue) (*structpb.Struct, error) {
	contents := make([]string, 0, len(req.GetValues()))
	for i, v := range req.GetValues() {
		str, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "message %d is not a string", i+1)
		}
		contents = append(contents, str.StringValue)
	}
	receipt, err := s.service.SendBulkMessages(ctx, contents)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return toReceiptStruct(receipt)
}

func (s *RegistryServer) GetMessage(ctx context.Context, req *wrapperspb.UInt64Value) (*structpb.Value, error) {
	msg, found, err := s.service.GetMessage(ctx, req.GetValue())
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	if !found {
		return structpb.NewNullValue(), nil
	}
	fields, err := structpb.NewStruct(map[string]any{
		"id":      msg.ID,
		"content": msg.Content,
		"sender":  nil,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return structpb.NewStructValue(fields), nil
}

func (s *RegistryServer) GetMessageCount(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	count, err := s.service.GetMessageCount(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return wrapperspb.UInt64(count), nil
}

func (s *RegistryServer) DoesMessageExist(ctx context.Context, req *wrapperspb.UInt64Value) (*wrapperspb.BoolValue, error) {
	exists, err := s.service.DoesMessageExist(ctx, req.GetValue())
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return wrapperspb.Bool(exists), nil
}

func (s *RegistryServer) GetLastMessageId(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	id, err := s.service.GetLastMessageID(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return wrapperspb.UInt64(id), nil
}

func (s *RegistryServer) GetServiceStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	state, err := s.service.GetServiceStatus(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	fields, err := structpb.NewStruct(map[string]any{
		"owner":         state.Owner.String(),
		"initialized":   state.Initialized,
		"paused":        state.Paused,
		"message_count": state.MessageCount,
		"status":        string(state.Status()),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return fields, nil
}

func (s *RegistryServer) admin(ctx context.Context, call func(context.Context, domain.Principal) error) (*wrapperspb.BoolValue, error) {
	caller, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil, errors.MapToGRPCError(errors.ErrMissingIdentity)
	}
	if err := call(ctx, caller); err != nil {
		s.log.Debug("Administrative call refused", "caller", caller, "error", err)
		return nil, errors.MapToGRPCError(err)
	}
	return wrapperspb.Bool(true), nil
}

func toReceiptStruct(receipt domain.BulkReceipt) (*structpb.Struct, error) {
	fields, err := structpb.NewStruct(map[string]any{
		"first_id":  receipt.FirstID,
		"second_id": receipt.SecondID,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return fields, nil
}
