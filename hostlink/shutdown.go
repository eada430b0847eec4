package hostlink

import (
	"time"

	"github.com/CredenceID/tab-pie-system-chre/domain/errors"
)

// Shutdown drives the teardown handshake: push the shutdown marker so the
// blocking GetMessageToHost call returns StatusShuttingDown, then wait for
// the host to drain everything queued before the marker.
//
// Both phases retry within the configured bounds and then give up: teardown
// must never hang on a possibly-dead host. A non-nil return means the
// handshake did not complete cleanly; the link still reaches PhaseStopped
// and the returned error is informational for the teardown supervisor.
// Subsequent calls are no-ops returning nil. All reporting here goes through
// the diagnostic channel, never the normal logging path.
func (l *Link) Shutdown() error {
	if !l.phase.CompareAndSwap(int32(PhaseRunning), int32(PhaseDraining)) {
		return nil
	}
	defer l.phase.Store(int32(PhaseStopped))

	l.diag.Info("shutting down host link")

	// New sends are rejected from here on, so the queue only drains. If it
	// is momentarily full, the host should be making room with every poll.
	pushed := false
	for attempt := 0; attempt < l.cfg.ShutdownPushAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(l.cfg.ShutdownPushInterval)
		}
		if l.out.TryPush(item{shutdown: true}) {
			pushed = true
			break
		}
	}
	if !pushed {
		err := &errors.ShutdownError{
			Phase:    "marker push",
			Attempts: l.cfg.ShutdownPushAttempts,
			Interval: l.cfg.ShutdownPushInterval,
		}
		l.diag.Error("no room in outbound queue for shutdown marker and host not draining", "error", err)
		return err
	}

	l.diag.Info("draining outbound queue")
	for attempt := 0; ; attempt++ {
		if l.out.Empty() {
			l.diag.Info("finished draining outbound queue")
			return nil
		}
		if attempt+1 >= l.cfg.DrainWaitAttempts {
			break
		}
		time.Sleep(l.cfg.DrainWaitInterval)
	}

	err := &errors.ShutdownError{
		Phase:    "drain wait",
		Attempts: l.cfg.DrainWaitAttempts,
		Interval: l.cfg.DrainWaitInterval,
	}
	l.diag.Warn("host took too long to drain outbound queue; exiting anyway", "error", err)
	return err
}
