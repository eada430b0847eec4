// Package ports declares the collaborator interfaces the host link depends
// on. The link accepts these interfaces; concrete managers live in the
// surrounding runtime.
package ports

import (
	"github.com/CredenceID/tab-pie-system-chre/domain/entities"
)

// HostCommsManager is the runtime-side collaborator that originates outbound
// messages and consumes inbound ones.
type HostCommsManager interface {
	// OnMessageToHostComplete returns ownership of an envelope to the
	// manager after the fetch endpoint has attempted to send it. It is
	// called exactly once per envelope handed to the link, on success and
	// failure alike, so envelope storage never leaks on an error path.
	OnMessageToHostComplete(msg *entities.MessageToHost)

	// SendMessageToNanoappFromHost routes a successfully decoded inbound
	// message to the addressed nanoapp. payload is a borrowed view into
	// the verified inbound buffer and is only valid for the duration of
	// the call; implementations must copy it if they retain it.
	SendMessageToNanoappFromHost(appID uint64, hostEndpoint uint16, messageType uint32, payload []byte)
}
