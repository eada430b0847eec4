package entities

// MessageToHost is the in-memory envelope for one message from a nanoapp to
// the host processor.
//
// Ownership: the producing manager owns the envelope until it is accepted by
// the link; the transport owns it while queued; ownership returns to the
// manager through HostCommsManager.OnMessageToHostComplete. The transport
// never retains or frees an envelope itself.
//
// The instance, including Payload, must remain valid and unmodified from the
// moment it is enqueued until the completion callback fires: the fetch path
// encodes it without copying.
type MessageToHost struct {
	// AppID identifies the originating nanoapp.
	AppID uint64

	// MessageType is application-defined and opaque to the transport.
	MessageType uint32

	// HostEndpoint identifies the logical host-side listener.
	HostEndpoint uint16

	// Payload is the message body. It may be nil or empty.
	Payload []byte
}
