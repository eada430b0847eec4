// Package wire implements the on-wire container format for messages crossing
// the hub/host boundary. A container is a tagged, self-describing binary
// buffer that can be structurally verified before any field is trusted,
// since the sender lives in a separate, less-trusted execution context.
//
// Layout (little-endian, fixed offsets):
//
//	byte 0   container version (currently 1)
//	byte 1   message kind
//
// Kind KindNanoappMessage body:
//
//	u64 app_id | u32 message_type | u16 host_endpoint | u8 flags
//	if flags&flagPayloadPresent: u32 payload_len, then payload bytes
//
// The payload section is omitted entirely for empty payloads; decoders treat
// an absent section as an empty payload. Unknown kinds verify at the
// container level so that new kinds can be added without breaking old
// decoders.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/CredenceID/tab-pie-system-chre/domain/entities"
)

// Version is the container format version this package encodes and accepts.
const Version = 1

// MessageKind is the container discriminant.
type MessageKind uint8

// Known container kinds. Zero is reserved so an all-zero buffer never
// verifies.
const (
	KindInvalid        MessageKind = 0
	KindNanoappMessage MessageKind = 1
)

// String returns a readable name for logging.
func (k MessageKind) String() string {
	switch k {
	case KindNanoappMessage:
		return "NanoappMessage"
	default:
		return fmt.Sprintf("MessageKind(%d)", uint8(k))
	}
}

const (
	preludeSize      = 2  // version + kind
	nanoappFixedSize = 15 // app_id + message_type + host_endpoint + flags
	payloadLenSize   = 4

	flagPayloadPresent = 0x01
)

// Structural verification failures.
var (
	ErrTruncated      = errors.New("wire: buffer shorter than container prelude")
	ErrBadVersion     = errors.New("wire: unsupported container version")
	ErrLengthMismatch = errors.New("wire: buffer length inconsistent with declared contents")
)

// NanoappMessage is the decoded view of a KindNanoappMessage container.
// Payload aliases the verified input buffer: it is a borrowed view, valid
// only while the buffer is.
type NanoappMessage struct {
	AppID        uint64
	MessageType  uint32
	HostEndpoint uint16
	Payload      []byte
}

// Container is the decoded view of a verified buffer. Nanoapp is non-nil
// only when Kind is KindNanoappMessage.
type Container struct {
	Kind    MessageKind
	Nanoapp *NanoappMessage
}

// EncodedSize returns the exact container size for msg.
func EncodedSize(msg *entities.MessageToHost) int {
	size := preludeSize + nanoappFixedSize
	if len(msg.Payload) > 0 {
		size += payloadLenSize + len(msg.Payload)
	}
	return size
}

// EncodeNanoappMessage builds the container for an outbound envelope.
// The payload section is not emitted when the payload is empty.
func EncodeNanoappMessage(msg *entities.MessageToHost) []byte {
	buf := make([]byte, 0, EncodedSize(msg))
	buf = append(buf, Version, byte(KindNanoappMessage))
	buf = binary.LittleEndian.AppendUint64(buf, msg.AppID)
	buf = binary.LittleEndian.AppendUint32(buf, msg.MessageType)
	buf = binary.LittleEndian.AppendUint16(buf, msg.HostEndpoint)
	if len(msg.Payload) == 0 {
		return append(buf, 0)
	}
	buf = append(buf, flagPayloadPresent)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(msg.Payload)))
	return append(buf, msg.Payload...)
}

// Verify checks buf for structural well-formedness without trusting any
// field: prelude present, version supported, and for known kinds an exact
// match between the buffer length and the declared contents. It must be
// called before DecodeContainer.
func Verify(buf []byte) error {
	if len(buf) < preludeSize {
		return ErrTruncated
	}
	if buf[0] != Version {
		return fmt.Errorf("%w: %d", ErrBadVersion, buf[0])
	}

	switch MessageKind(buf[1]) {
	case KindNanoappMessage:
		return verifyNanoappBody(buf[preludeSize:])
	default:
		// Unknown kinds have an unknown body layout; the container
		// itself is well-formed and the caller decides what to do.
		return nil
	}
}

func verifyNanoappBody(body []byte) error {
	if len(body) < nanoappFixedSize {
		return fmt.Errorf("%w: nanoapp body %d bytes", ErrLengthMismatch, len(body))
	}
	flags := body[nanoappFixedSize-1]
	if flags&flagPayloadPresent == 0 {
		if len(body) != nanoappFixedSize {
			return fmt.Errorf("%w: %d trailing bytes", ErrLengthMismatch, len(body)-nanoappFixedSize)
		}
		return nil
	}
	if len(body) < nanoappFixedSize+payloadLenSize {
		return fmt.Errorf("%w: payload length field truncated", ErrLengthMismatch)
	}
	payloadLen := binary.LittleEndian.Uint32(body[nanoappFixedSize:])
	want := nanoappFixedSize + payloadLenSize + int(payloadLen)
	if len(body) != want {
		return fmt.Errorf("%w: declared payload %d bytes, body holds %d",
			ErrLengthMismatch, payloadLen, len(body)-nanoappFixedSize-payloadLenSize)
	}
	return nil
}

// DecodeContainer reads a verified buffer into a Container. The returned
// payload aliases buf. Calling DecodeContainer on an unverified buffer is a
// contract violation; it re-runs Verify and fails rather than read garbage.
func DecodeContainer(buf []byte) (Container, error) {
	if err := Verify(buf); err != nil {
		return Container{}, err
	}

	kind := MessageKind(buf[1])
	if kind != KindNanoappMessage {
		return Container{Kind: kind}, nil
	}

	body := buf[preludeSize:]
	msg := &NanoappMessage{
		AppID:        binary.LittleEndian.Uint64(body),
		MessageType:  binary.LittleEndian.Uint32(body[8:]),
		HostEndpoint: binary.LittleEndian.Uint16(body[12:]),
	}
	if body[nanoappFixedSize-1]&flagPayloadPresent != 0 {
		msg.Payload = body[nanoappFixedSize+payloadLenSize:]
	}
	return Container{Kind: kind, Nanoapp: msg}, nil
}
