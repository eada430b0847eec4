// Package errors provides the typed errors of the host link transport.
// All types support unwrapping via errors.Is and errors.As.
package errors

import (
	stdErrors "errors"
	"fmt"
	"time"
)

// ErrShuttingDown is returned by the fetch path when the shutdown marker is
// popped. It is not a failure: it exists so the host polling loop can exit
// instead of treating teardown as a transient error.
var ErrShuttingDown = stdErrors.New("host link is shutting down")

// VerificationError reports an inbound buffer that failed structural
// verification and was dropped without dispatch.
type VerificationError struct {
	Err  error
	Size int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("corrupted or invalid message from host (size %d): %v", e.Size, e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// BufferOverflowError reports an outbound message that could not fit the
// caller-supplied buffer. The message is dropped; ownership is still
// returned through the completion callback.
type BufferOverflowError struct {
	Need     int
	Capacity int
}

func (e *BufferOverflowError) Error() string {
	return fmt.Sprintf("encoded message size %d exceeds host buffer capacity %d", e.Need, e.Capacity)
}

// ShutdownError reports a shutdown handshake that did not complete within
// its bounded retries. Teardown proceeds regardless; the error is
// informational for the teardown supervisor.
type ShutdownError struct {
	Phase    string
	Attempts int
	Interval time.Duration
}

func (e *ShutdownError) Error() string {
	return fmt.Sprintf("shutdown %s did not complete after %d attempts %v apart", e.Phase, e.Attempts, e.Interval)
}
