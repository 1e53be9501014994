package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The registry service is described by hand over protobuf well-known types,
// so no generated stubs are needed on either side of the wire.
const ServiceName = "registry.v1.MessageRegistry"

const (
	MethodInitialize           = "/" + ServiceName + "/Initialize"
	MethodPauseService         = "/" + ServiceName + "/PauseService"
	MethodResumeService        = "/" + ServiceName + "/ResumeService"
	MethodSendAnonymousMessage = "/" + ServiceName + "/SendAnonymousMessage"
	MethodSendBulkMessages     = "/" + ServiceName + "/SendBulkMessages"
	MethodGetMessage           = "/" + ServiceName + "/GetMessage"
	MethodGetMessageCount      = "/" + ServiceName + "/GetMessageCount"
	MethodDoesMessageExist     = "/" + ServiceName + "/DoesMessageExist"
	MethodGetLastMessageId     = "/" + ServiceName + "/GetLastMessageId"
	MethodGetServiceStatus     = "/" + ServiceName + "/GetServiceStatus"
)

type MessageRegistryServer interface {
	Initialize(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
	PauseService(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
	ResumeService(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
	SendAnonymousMessage(context.Context, *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error)
	// SendBulkMessages takes a list of two strings and answers {first_id, second_id}.
	SendBulkMessages(context.Context, *structpb.ListValue) (*structpb.Struct, error)
	// GetMessage answers a null value when the message does not exist.
	GetMessage(context.Context, *wrapperspb.UInt64Value) (*structpb.Value, error)
	GetMessageCount(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	DoesMessageExist(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BoolValue, error)
	GetLastMessageId(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	GetServiceStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

var MessageRegistryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MessageRegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Initialize", Handler: unaryHandler[emptypb.Empty](MethodInitialize, MessageRegistryServer.Initialize)},
		{MethodName: "PauseService", Handler: unaryHandler[emptypb.Empty](MethodPauseService, MessageRegistryServer.PauseService)},
		{MethodName: "ResumeService", Handler: unaryHandler[emptypb.Empty](MethodResumeService, MessageRegistryServer.ResumeService)},
		{MethodName: "SendAnonymousMessage", Handler: unaryHandler[wrapperspb.StringValue](MethodSendAnonymousMessage, MessageRegistryServer.SendAnonymousMessage)},
		{MethodName: "SendBulkMessages", Handler: unaryHandler[structpb.ListValue](MethodSendBulkMessages, MessageRegistryServer.SendBulkMessages)},
		{MethodName: "GetMessage", Handler: unaryHandler[wrapperspb.UInt64Value](MethodGetMessage, MessageRegistryServer.GetMessage)},
		{MethodName: "GetMessageCount", Handler: unaryHandler[emptypb.Empty](MethodGetMessageCount, MessageRegistryServer.GetMessageCount)},
		{MethodName: "DoesMessageExist", Handler: unaryHandler[wrapperspb.UInt64Value](MethodDoesMessageExist, MessageRegistryServer.DoesMessageExist)},
		{MethodName: "GetLastMessageId", Handler: unaryHandler[emptypb.Empty](MethodGetLastMessageId, MessageRegistryServer.GetLastMessageId)},
		{MethodName: "GetServiceStatus", Handler: unaryHandler[emptypb.Empty](MethodGetServiceStatus, MessageRegistryServer.GetServiceStatus)},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterMessageRegistryServer(s grpc.ServiceRegistrar, srv MessageRegistryServer) {
	s.RegisterService(&MessageRegistryServiceDesc, srv)
}

// unaryHandler decodes the request, then runs call through the interceptor chain.
func unaryHandler[Req any, PReq interface {
	*Req
	proto.Message
}, Resp proto.Message](
	fullMethod string,
	call func(MessageRegistryServer, context.Context, PReq) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MessageRegistryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MessageRegistryServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}
