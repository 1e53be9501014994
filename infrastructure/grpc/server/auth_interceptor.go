package server

import (
	"anonymity-service/auth"
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Only administration requires an identity. Submissions and reads are open
// to anyone and never look at the authorization header.
var adminMethods = map[string]struct{}{
	MethodInitialize:    {},
	MethodPauseService:  {},
	MethodResumeService: {},
}

// AuthInterceptor resolves the caller of administrative calls from a bearer JWT.
func AuthInterceptor(tokens *auth.Tokens) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any,
		info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !isAdminMethod(info.FullMethod) {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "metadata is missing")
		}
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "authorization token is missing")
		}

		// Expecting the standard "Bearer <token>" format
		principal, err := tokens.Validate(strings.TrimPrefix(values[0], "Bearer "))
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
		}
		return handler(auth.WithPrincipal(ctx, principal), req)
	}
}

func isAdminMethod(method string) bool {
	_, ok := adminMethods[method]
	return ok
}
