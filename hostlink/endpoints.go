package hostlink

import (
	"fmt"

	"github.com/CredenceID/tab-pie-system-chre/domain/errors"
	"github.com/CredenceID/tab-pie-system-chre/internal/assert"
	"github.com/CredenceID/tab-pie-system-chre/wire"
)

// GetMessageToHost is the blocking fetch endpoint polled by the host. It
// waits for the next outbound envelope, encodes it into buf, and returns the
// encoded length with StatusSuccess.
//
// It returns StatusShuttingDown once the shutdown marker is popped; the host
// polling loop must treat that as an exit signal, not a transient error.
// On any failure the pending message is dropped with StatusError, and the
// completion callback still fires: exactly one OnMessageToHostComplete per
// popped envelope, on every exit path, so envelope ownership never leaks.
//
// An empty buf is a caller contract violation.
func (l *Link) GetMessageToHost(buf []byte) (int, Status) {
	assert.That(len(buf) > 0, "GetMessageToHost requires a non-empty output buffer")
	if len(buf) == 0 {
		return 0, StatusError
	}

	it := l.out.Pop()
	if it.shutdown {
		return 0, StatusShuttingDown
	}

	msg := it.msg
	defer l.mgr.OnMessageToHostComplete(msg)

	// Failures below concern the transport itself, so they are reported on
	// the diagnostic channel: a persistent error logged through the normal
	// path could try to send a message and loop forever.
	if len(msg.Payload) > len(buf) {
		l.diag.Error("message payload exceeds host buffer; dropping",
			"payload_size", len(msg.Payload),
			"buffer_capacity", len(buf))
		return 0, StatusError
	}

	encoded := wire.EncodeNanoappMessage(msg)
	if len(encoded) > len(buf) {
		overflow := &errors.BufferOverflowError{Need: len(encoded), Capacity: len(buf)}
		l.diag.Error("encoded message too big for host buffer; dropping", "error", overflow)
		return 0, StatusError
	}

	return copy(buf, encoded), StatusSuccess
}

// DeliverMessageFromHost is the inbound endpoint the host calls to push data
// in. The buffer is structurally verified before any field is read; a buffer
// that fails verification is logged and dropped with StatusError and nothing
// is dispatched.
//
// A structurally valid container of an unrecognized kind is not a protocol
// violation: it is logged and dropped, and the call still reports
// StatusSuccess so old hubs tolerate new host message kinds.
func (l *Link) DeliverMessageFromHost(buf []byte) Status {
	assert.That(len(buf) > 0, "DeliverMessageFromHost requires a non-empty buffer")
	if len(buf) == 0 {
		l.log.Error("got empty message from host")
		return StatusError
	}

	if err := wire.Verify(buf); err != nil {
		verr := &errors.VerificationError{Err: err, Size: len(buf)}
		l.log.Error("dropping corrupt message from host", "error", verr)
		return StatusError
	}

	container, err := wire.DecodeContainer(buf)
	if err != nil {
		l.log.Error("dropping undecodable message from host", "error", err)
		return StatusError
	}

	handler, ok := l.handlers[container.Kind]
	if !ok {
		l.log.Warn("ignoring unexpected message kind from host", "kind", container.Kind)
		return StatusSuccess
	}
	handler(container)
	return StatusSuccess
}

func (l *Link) handleNanoappMessage(container wire.Container) {
	msg := container.Nanoapp
	l.log.Debug("parsed nanoapp message from host",
		"app_id", fmt.Sprintf("%#016x", msg.AppID),
		"endpoint", fmt.Sprintf("%#x", msg.HostEndpoint),
		"message_type", msg.MessageType,
		"payload_size", len(msg.Payload))

	// Payload aliases the caller's buffer; the manager must copy if it
	// retains it past this call.
	l.mgr.SendMessageToNanoappFromHost(msg.AppID, msg.HostEndpoint, msg.MessageType, msg.Payload)
}
