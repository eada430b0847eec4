package errors

import (
	stdErrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationError_Unwrap(t *testing.T) {
	cause := stdErrors.New("length mismatch")
	err := &VerificationError{Err: cause, Size: 12}

	assert.Contains(t, err.Error(), "size 12")
	assert.True(t, stdErrors.Is(err, cause))

	var verr *VerificationError
	require.True(t, stdErrors.As(error(err), &verr))
	assert.Equal(t, 12, verr.Size)
}

func TestBufferOverflowError_Message(t *testing.T) {
	err := &BufferOverflowError{Need: 300, Capacity: 256}
	assert.Contains(t, err.Error(), "300")
	assert.Contains(t, err.Error(), "256")
}

func TestShutdownError_Message(t *testing.T) {
	err := &ShutdownError{Phase: "drain wait", Attempts: 5, Interval: 5 * time.Millisecond}
	assert.Contains(t, err.Error(), "drain wait")
	assert.Contains(t, err.Error(), "5 attempts")
}

func TestErrShuttingDown_IsDistinguishable(t *testing.T) {
	wrapped := stdErrors.Join(stdErrors.New("poll loop"), ErrShuttingDown)
	assert.True(t, stdErrors.Is(wrapped, ErrShuttingDown))
	assert.False(t, stdErrors.Is(stdErrors.New("other"), ErrShuttingDown))
}
