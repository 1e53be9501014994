package client

import (
	"anonymity-service/domain"
	"anonymity-service/errors"
	"anonymity-service/infrastructure/grpc/server"
	"context"
	"fmt"

	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// RegistryClient calls the message registry over gRPC and returns domain values.
// Registry errors come back as their sentinel, so errors.Is and errors.CodeOf
// work the same on both sides of the wire.
type RegistryClient struct {
	conn  grpc.ClientConnInterface
	token string
}

func NewRegistryClient(conn grpc.ClientConnInterface) *RegistryClient {
	return &RegistryClient{conn: conn}
}

// WithToken returns a client sending token on administrative calls only.
func (c *RegistryClient) WithToken(token string) *RegistryClient {
	return &RegistryClient{conn: c.conn, token: token}
}

func (c *RegistryClient) Initialize(ctx context.Context) error {
	return c.admin(ctx, server.MethodInitialize)
}

func (c *RegistryClient) PauseService(ctx context.Context) error {
	return c.admin(ctx, server.MethodPauseService)
}

func (c *RegistryClient) ResumeService(ctx context.Context) error {
	return c.admin(ctx, server.MethodResumeService)
}

func (c *RegistryClient) SendAnonymousMessage(ctx context.Context, content string) (uint64, error) {
	out := &wrapperspb.UInt64Value{}
	if err := c.invoke(ctx, server.MethodSendAnonymousMessage, wrapperspb.String(content), out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *RegistryClient) SendBulkMessages(ctx context.Context, contents ...string) (domain.BulkReceipt, error) {
	in := &structpb.ListValue{Values: lo.Map(contents, func(content string, _ int) *structpb.Value {
		return structpb.NewStringValue(content)
	})}
	out := &structpb.Struct{}
	if err := c.invoke(ctx, server.MethodSendBulkMessages, in, out); err != nil {
		return domain.BulkReceipt{}, err
	}
	return domain.BulkReceipt{
		FirstID:  uint64(out.GetFields()["first_id"].GetNumberValue()),
		SecondID: uint64(out.GetFields()["second_id"].GetNumberValue()),
	}, nil
}

func (c *RegistryClient) GetMessage(ctx context.Context, id uint64) (domain.Message, bool, error) {
	out := &structpb.Value{}
	if err := c.invoke(ctx, server.MethodGetMessage, wrapperspb.UInt64(id), out); err != nil {
		return domain.Message{}, false, err
	}
	fields := out.GetStructValue().GetFields()
	if fields == nil {
		return domain.Message{}, false, nil
	}
	return domain.Message{ID: id, Content: fields["content"].GetStringValue()}, true, nil
}

func (c *RegistryClient) GetMessageCount(ctx context.Context) (uint64, error) {
	out := &wrapperspb.UInt64Value{}
	if err := c.invoke(ctx, server.MethodGetMessageCount, &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *RegistryClient) DoesMessageExist(ctx context.Context, id uint64) (bool, error) {
	out := &wrapperspb.BoolValue{}
	if err := c.invoke(ctx, server.MethodDoesMessageExist, wrapperspb.UInt64(id), out); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

func (c *RegistryClient) GetLastMessageID(ctx context.Context) (uint64, error) {
	out := &wrapperspb.UInt64Value{}
	if err := c.invoke(ctx, server.MethodGetLastMessageId, &emptypb.Empty{}, out); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *RegistryClient) GetServiceStatus(ctx context.Context) (domain.State, error) {
	out := &structpb.Struct{}
	if err := c.invoke(ctx, server.MethodGetServiceStatus, &emptypb.Empty{}, out); err != nil {
		return domain.State{}, err
	}
	fields := out.GetFields()
	return domain.State{
		Owner:        domain.Principal(fields["owner"].GetStringValue()),
		Initialized:  fields["initialized"].GetBoolValue(),
		Paused:       fields["paused"].GetBoolValue(),
		MessageCount: uint64(fields["message_count"].GetNumberValue()),
	}, nil
}

func (c *RegistryClient) admin(ctx context.Context, method string) error {
	if c.token == "" {
		return fmt.Errorf("%s: %w", method, errors.ErrMissingIdentity)
	}
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
	return c.invoke(ctx, method, &emptypb.Empty{}, &wrapperspb.BoolValue{})
}

func (c *RegistryClient) invoke(ctx context.Context, method string, in, out proto.Message) error {
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return errors.FromGRPCError(err)
	}
	return nil
}
