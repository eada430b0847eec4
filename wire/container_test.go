package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CredenceID/tab-pie-system-chre/domain/entities"
)

func TestEncodeNanoappMessage_RoundTrip(t *testing.T) {
	msg := &entities.MessageToHost{
		AppID:        0x123456789abcdef0,
		MessageType:  7,
		HostEndpoint: 3,
		Payload:      []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01},
	}

	buf := EncodeNanoappMessage(msg)
	require.Equal(t, EncodedSize(msg), len(buf))
	require.NoError(t, Verify(buf))

	container, err := DecodeContainer(buf)
	require.NoError(t, err)
	require.Equal(t, KindNanoappMessage, container.Kind)
	require.NotNil(t, container.Nanoapp)

	decoded := container.Nanoapp
	assert.Equal(t, msg.AppID, decoded.AppID)
	assert.Equal(t, msg.MessageType, decoded.MessageType)
	assert.Equal(t, msg.HostEndpoint, decoded.HostEndpoint)
	assert.Equal(t, msg.Payload, decoded.Payload)
}

func TestEncodeNanoappMessage_EmptyPayloadOmitsSection(t *testing.T) {
	for _, payload := range [][]byte{nil, {}} {
		msg := &entities.MessageToHost{AppID: 1, MessageType: 2, HostEndpoint: 3, Payload: payload}

		buf := EncodeNanoappMessage(msg)
		// prelude + fixed body only: no length field, no payload bytes.
		require.Equal(t, 17, len(buf))
		require.NoError(t, Verify(buf))

		container, err := DecodeContainer(buf)
		require.NoError(t, err)
		require.NotNil(t, container.Nanoapp)
		assert.Empty(t, container.Nanoapp.Payload, "absent payload section must decode as empty")
	}
}

func TestDecodeContainer_PayloadAliasesBuffer(t *testing.T) {
	msg := &entities.MessageToHost{AppID: 1, Payload: []byte{1, 2, 3}}
	buf := EncodeNanoappMessage(msg)

	container, err := DecodeContainer(buf)
	require.NoError(t, err)

	buf[len(buf)-1] = 99
	assert.Equal(t, byte(99), container.Nanoapp.Payload[2], "payload is a borrowed view, not a copy")
}

func TestVerify_RejectsCorruption(t *testing.T) {
	valid := EncodeNanoappMessage(&entities.MessageToHost{
		AppID:       0x1,
		MessageType: 7,
		Payload:     []byte("hello"),
	})

	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"single byte", []byte{Version}},
		{"all zero bytes", make([]byte, 4)},
		{"unsupported version", mutate(valid, 0, 2)},
		{"truncated body", valid[:len(valid)-1]},
		{"trailing garbage", append(append([]byte{}, valid...), 0xff)},
		{"declared payload length too large", mutate(valid, 17, 200)},
		{"declared payload length too small", mutate(valid, 17, 1)},
		{"body shorter than fixed fields", valid[:10]},
		{"payload length field truncated", valid[:18]},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, Verify(tc.buf))
			_, err := DecodeContainer(tc.buf)
			assert.Error(t, err, "decode must refuse what verification rejects")
		})
	}
}

func TestVerify_UnknownKindIsStructurallyValid(t *testing.T) {
	buf := []byte{Version, 0x7f, 1, 2, 3, 4}
	require.NoError(t, Verify(buf))

	container, err := DecodeContainer(buf)
	require.NoError(t, err)
	assert.Equal(t, MessageKind(0x7f), container.Kind)
	assert.Nil(t, container.Nanoapp)
}

func TestMessageKind_String(t *testing.T) {
	assert.Equal(t, "NanoappMessage", KindNanoappMessage.String())
	assert.Equal(t, "MessageKind(9)", MessageKind(9).String())
}

// mutate returns a copy of buf with buf[i] set to v.
func mutate(buf []byte, i int, v byte) []byte {
	out := append([]byte{}, buf...)
	out[i] = v
	return out
}
