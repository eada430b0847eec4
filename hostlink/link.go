// Package hostlink implements the message bridge between the hub runtime and
// the host processor. The host has no way to receive data except by blocking
// in GetMessageToHost, and no way to push data in except through
// DeliverMessageFromHost; everything else in this package exists to make
// those two calls safe: a bounded queue decoupling producers from the single
// polling consumer, and a bounded shutdown handshake so the blocking call can
// be unwound deterministically.
package hostlink

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/CredenceID/tab-pie-system-chre/diag"
	"github.com/CredenceID/tab-pie-system-chre/domain/entities"
	"github.com/CredenceID/tab-pie-system-chre/domain/ports"
	"github.com/CredenceID/tab-pie-system-chre/internal/assert"
	"github.com/CredenceID/tab-pie-system-chre/queue"
	"github.com/CredenceID/tab-pie-system-chre/wire"
)

// item is one slot of the outbound queue: either an envelope or the
// shutdown marker. A tagged struct keeps the terminator check exhaustive
// instead of relying on a distinguished nil.
type item struct {
	msg      *entities.MessageToHost
	shutdown bool
}

// Phase is the lifecycle state of a Link.
type Phase int32

const (
	// PhaseRunning is the steady state: sends are accepted.
	PhaseRunning Phase = iota

	// PhaseDraining means Shutdown has begun; new sends are rejected while
	// the host drains what is already queued.
	PhaseDraining

	// PhaseStopped means the shutdown handshake has finished (cleanly or
	// not) and the link is dead.
	PhaseStopped
)

// String returns a readable name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseDraining:
		return "draining"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Link is the hub-side endpoint of the host message bridge. It owns the
// outbound queue and the inbound dispatch table; its lifecycle is tied to
// New and Shutdown rather than process-global state.
//
// Concurrency: any number of goroutines may call SendMessage; the host RPC
// layer drives GetMessageToHost from a single polling thread in steady
// state; Shutdown runs on a teardown goroutine distinct from both.
type Link struct {
	cfg      entities.Config
	mgr      ports.HostCommsManager
	out      *queue.Blocking[item]
	handlers map[wire.MessageKind]func(wire.Container)
	log      *slog.Logger
	diag     *slog.Logger
	phase    atomic.Int32
}

// Option configures a Link during New.
type Option func(*Link)

// WithConfig replaces the default configuration.
func WithConfig(cfg entities.Config) Option {
	return func(l *Link) {
		l.cfg = cfg
	}
}

// WithLogger sets the logger for the normal path (inbound traces, corrupt
// message warnings). Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Link) {
		l.log = logger
	}
}

// WithDiagnostics sets the logger for failures that concern the transport
// itself. It must not route through the message path; see package diag.
// Defaults to diag.Default().
func WithDiagnostics(logger *slog.Logger) Option {
	return func(l *Link) {
		l.diag = logger
	}
}

// New creates a Link delivering inbound messages to mgr.
func New(mgr ports.HostCommsManager, opts ...Option) (*Link, error) {
	if mgr == nil {
		return nil, fmt.Errorf("hostlink: comms manager is required")
	}

	l := &Link{
		cfg: entities.DefaultConfig(),
		mgr: mgr,
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.cfg.Validate(); err != nil {
		return nil, err
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	if l.diag == nil {
		l.diag = diag.Default()
	}

	l.out = queue.NewBlocking[item](l.cfg.QueueCapacity)
	l.handlers = map[wire.MessageKind]func(wire.Container){
		wire.KindNanoappMessage: l.handleNanoappMessage,
	}
	return l, nil
}

// SendMessage hands an envelope to the transport. It returns false when the
// outbound queue is full or the link is shutting down; the caller decides
// whether that is fatal, dropped, or retried — the transport never retries.
// On success, ownership of msg transfers to the link until the completion
// callback returns it.
func (l *Link) SendMessage(msg *entities.MessageToHost) bool {
	assert.That(msg != nil, "SendMessage requires a non-nil envelope")
	if msg == nil || l.Phase() != PhaseRunning {
		return false
	}
	return l.out.TryPush(item{msg: msg})
}

// Phase returns the current lifecycle state.
func (l *Link) Phase() Phase {
	return Phase(l.phase.Load())
}
