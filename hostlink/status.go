package hostlink

import (
	stdErrors "errors"

	"github.com/CredenceID/tab-pie-system-chre/domain/errors"
)

// Status is the result code returned across the RPC boundary. The numeric
// values are part of the boundary contract with the host-side stub.
type Status int32

const (
	// StatusSuccess means the call completed and any outputs are valid.
	StatusSuccess Status = 0

	// StatusError is the generic failure code: the message was dropped
	// but the link remains usable.
	StatusError Status = -1

	// StatusShuttingDown is returned by the fetch endpoint when the link
	// is terminating, so the host polling loop can exit instead of
	// retrying.
	StatusShuttingDown Status = -2
)

// String returns a readable name for logging.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusError:
		return "ERROR"
	case StatusShuttingDown:
		return "SHUTTING_DOWN"
	default:
		return "UNKNOWN"
	}
}

// StatusFromError maps a transport error to its boundary status code.
// Host RPC adapters use this when bridging the Go API to a foreign ABI.
func StatusFromError(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case stdErrors.Is(err, errors.ErrShuttingDown):
		return StatusShuttingDown
	default:
		return StatusError
	}
}
