package errors

import (
	stderrors "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Code is the numeric error code surfaced verbatim to callers.
type Code uint32

const (
	CodeOwnerOnly            Code = 100
	CodeAlreadyInitialized   Code = 101
	CodeNotInitialized       Code = 102
	CodeInvalidMessageLength Code = 103
	CodeMessageNotFound      Code = 104
	CodeInvalidMessageCount  Code = 105
	CodeMessageLimitExceeded Code = 106
)

var (
	ErrOwnerOnly            = fmt.Errorf("caller is not the owner")
	ErrAlreadyInitialized   = fmt.Errorf("registry already initialized")
	ErrNotInitialized       = fmt.Errorf("registry not initialized or paused")
	ErrInvalidMessageLength = fmt.Errorf("invalid message length")
	ErrMessageNotFound      = fmt.Errorf("message not found")
	ErrInvalidMessageCount  = fmt.Errorf("invalid message count")
	ErrMessageLimitExceeded = fmt.Errorf("message limit exceeded")

	ErrStateNotFound   = fmt.Errorf("registry state not found")
	ErrWorkerPanic     = fmt.Errorf("worker panic")
	ErrInvalidToken    = fmt.Errorf("invalid or expired token")
	ErrMissingIdentity = fmt.Errorf("caller identity is missing")
)

var codeByErr = map[error]Code{
	ErrOwnerOnly:            CodeOwnerOnly,
	ErrAlreadyInitialized:   CodeAlreadyInitialized,
	ErrNotInitialized:       CodeNotInitialized,
	ErrInvalidMessageLength: CodeInvalidMessageLength,
	ErrMessageNotFound:      CodeMessageNotFound,
	ErrInvalidMessageCount:  CodeInvalidMessageCount,
	ErrMessageLimitExceeded: CodeMessageLimitExceeded,
}

func (c Code) String() string {
	switch c {
	case CodeOwnerOnly:
		return "OWNER_ONLY"
	case CodeAlreadyInitialized:
		return "ALREADY_INITIALIZED"
	case CodeNotInitialized:
		return "NOT_INITIALIZED"
	case CodeInvalidMessageLength:
		return "INVALID_MESSAGE_LENGTH"
	case CodeMessageNotFound:
		return "MESSAGE_NOT_FOUND"
	case CodeInvalidMessageCount:
		return "INVALID_MESSAGE_COUNT"
	case CodeMessageLimitExceeded:
		return "MESSAGE_LIMIT_EXCEEDED"
	default:
		return fmt.Sprintf("UNKNOWN_%d", uint32(c))
	}
}

// Err returns the sentinel error carrying this code, or nil for an unknown code.
func (c Code) Err() error {
	for err, code := range codeByErr {
		if code == c {
			return err
		}
	}
	return nil
}

// CodeOf reports the registry code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	if err == nil {
		return 0, false
	}
	for sentinel, code := range codeByErr {
		if stderrors.Is(err, sentinel) {
			return code, true
		}
	}
	return 0, false
}

// MapToGRPCError converts a registry error into a gRPC status.
// The numeric code travels as a UInt32Value detail so clients can recover it.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	code, ok := CodeOf(err)
	if !ok {
		switch {
		case stderrors.Is(err, ErrInvalidToken), stderrors.Is(err, ErrMissingIdentity):
			return status.Error(codes.Unauthenticated, err.Error())
		default:
			return status.Error(codes.Internal, err.Error())
		}
	}

	st := status.New(grpcCode(code), fmt.Sprintf("(err u%d) %s", uint32(code), err.Error()))
	detailed, detailErr := st.WithDetails(wrapperspb.UInt32(uint32(code)))
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}

// FromGRPCError recovers the registry sentinel from a status produced by MapToGRPCError.
// Errors without a registry code are returned unchanged.
func FromGRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok || err == nil {
		return err
	}
	for _, detail := range st.Details() {
		v, ok := detail.(*wrapperspb.UInt32Value)
		if !ok {
			continue
		}
		if sentinel := Code(v.GetValue()).Err(); sentinel != nil {
			return fmt.Errorf("%w: %s", sentinel, st.Message())
		}
	}
	return err
}

func grpcCode(code Code) codes.Code {
	switch code {
	case CodeOwnerOnly:
		return codes.PermissionDenied
	case CodeAlreadyInitialized:
		return codes.AlreadyExists
	case CodeNotInitialized:
		return codes.FailedPrecondition
	case CodeInvalidMessageLength, CodeInvalidMessageCount:
		return codes.InvalidArgument
	case CodeMessageNotFound:
		return codes.NotFound
	case CodeMessageLimitExceeded:
		return codes.ResourceExhausted
	default:
		return codes.Unknown
	}
}
