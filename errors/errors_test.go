package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCodeOf(t *testing.T) {
	req := require.New(t)

	code, ok := CodeOf(fmt.Errorf("send failed: %w", ErrNotInitialized))
	req.True(ok)
	req.Equal(CodeNotInitialized, code)
	req.Equal(uint32(102), uint32(code))

	_, ok = CodeOf(fmt.Errorf("disk is gone"))
	req.False(ok)

	_, ok = CodeOf(nil)
	req.False(ok)
}

func TestCode_Err_RoundTrip(t *testing.T) {
	req := require.New(t)
	for _, code := range []Code{
		CodeOwnerOnly, CodeAlreadyInitialized, CodeNotInitialized,
		CodeInvalidMessageLength, CodeMessageNotFound,
		CodeInvalidMessageCount, CodeMessageLimitExceeded,
	} {
		got, ok := CodeOf(code.Err())
		req.True(ok, code.String())
		req.Equal(code, got)
	}
	req.Nil(Code(999).Err())
	req.Equal("UNKNOWN_999", Code(999).String())
}

func TestMapToGRPCError(t *testing.T) {
	t.Run("registry error carries its numeric code", func(t *testing.T) {
		req := require.New(t)
		err := MapToGRPCError(ErrOwnerOnly)

		st, ok := status.FromError(err)
		req.True(ok)
		req.Equal(codes.PermissionDenied, st.Code())
		req.Contains(st.Message(), "(err u100)")

		back := FromGRPCError(err)
		req.ErrorIs(back, ErrOwnerOnly)
	})

	t.Run("infrastructure error becomes internal", func(t *testing.T) {
		req := require.New(t)
		st, ok := status.FromError(MapToGRPCError(fmt.Errorf("badger closed")))
		req.True(ok)
		req.Equal(codes.Internal, st.Code())
	})

	t.Run("identity error becomes unauthenticated", func(t *testing.T) {
		req := require.New(t)
		st, ok := status.FromError(MapToGRPCError(ErrInvalidToken))
		req.True(ok)
		req.Equal(codes.Unauthenticated, st.Code())
	})

	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, MapToGRPCError(nil))
	})
}
