//go:build unix

package host

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// pipeNodes wraps both ends of a fresh pipe. Ownership transfers to the
// returned nodes; closing them closes the pipe.
func pipeNodes(t *testing.T) (r, w *INode) {
	t.Helper()
	fds := make([]int, 2)
	if err := unix.Pipe(fds); err != nil {
		t.Fatalf("pipe: %v", err)
	}
	r, errno := FromRawFd(fds[0])
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("wrap read end: %v", errno)
	}
	w, errno = FromRawFd(fds[1])
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("wrap write end: %v", errno)
	}
	t.Cleanup(func() { r.Close(); w.Close() })
	return r, w
}

func newTestPoller(t *testing.T, capacity int) *Poller {
	t.Helper()
	p, errno := NewPoller(capacity)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("new poller: %v", errno)
	}
	t.Cleanup(p.Close)
	return p
}

func collect(t *testing.T, p *Poller) []wasip1.Event {
	t.Helper()
	var events []wasip1.Event
	if errno := p.Wait(func(ev wasip1.Event) { events = append(events, ev) }); errno != wasip1.ErrnoSuccess {
		t.Fatalf("wait: %v", errno)
	}
	return events
}

func TestPollZeroSubscriptions(t *testing.T) {
	p := newTestPoller(t, 4)
	errno := p.Wait(func(wasip1.Event) {
		t.Error("callback invoked with no subscriptions")
	})
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("wait: %v", errno)
	}
}

func TestPollReadReadyBeatsFarClock(t *testing.T) {
	r, w := pipeNodes(t)
	payload := []byte("ready")
	if _, errno := w.FdWrite([][]byte{payload}); errno != wasip1.ErrnoSuccess {
		t.Fatalf("write: %v", errno)
	}

	p := newTestPoller(t, 2)
	if errno := p.Read(r, 1); errno != wasip1.ErrnoSuccess {
		t.Fatalf("subscribe read: %v", errno)
	}
	farOut := wasip1.Timestamp(2 * time.Second)
	if errno := p.Clock(wasip1.ClockMonotonic, farOut, 0, 0, 2); errno != wasip1.ErrnoSuccess {
		t.Fatalf("subscribe clock: %v", errno)
	}

	start := time.Now()
	events := collect(t, p)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("wait took %v with data already buffered", elapsed)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events %v, want 1", len(events), events)
	}
	ev := events[0]
	if ev.Userdata != 1 || ev.Type != wasip1.EventtypeFdRead || ev.Errno != wasip1.ErrnoSuccess {
		t.Errorf("event = %+v, want read/userdata 1/success", ev)
	}
	if ev.NBytes != wasip1.Filesize(len(payload)) {
		t.Errorf("nbytes = %d, want %d", ev.NBytes, len(payload))
	}
}

func TestPollClockExpiry(t *testing.T) {
	p := newTestPoller(t, 1)
	timeout := wasip1.Timestamp(50 * time.Millisecond)
	if errno := p.Clock(wasip1.ClockMonotonic, timeout, 0, 0, 7); errno != wasip1.ErrnoSuccess {
		t.Fatalf("subscribe clock: %v", errno)
	}

	start := time.Now()
	events := collect(t, p)
	elapsed := time.Since(start)
	if elapsed < 40*time.Millisecond {
		t.Errorf("clock fired after %v, want at least ~50ms", elapsed)
	}
	if elapsed > 2*time.Second {
		t.Errorf("clock fired after %v, far past the deadline", elapsed)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if ev := events[0]; ev.Userdata != 7 || ev.Type != wasip1.EventtypeClock || ev.Errno != wasip1.ErrnoSuccess {
		t.Errorf("event = %+v, want clock/userdata 7/success", ev)
	}
}

func TestPollClockAbsolute(t *testing.T) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		t.Fatalf("clock_gettime: %v", err)
	}
	deadline := wasip1.Timestamp(ts.Nano()) + wasip1.Timestamp(50*time.Millisecond)

	p := newTestPoller(t, 1)
	if errno := p.Clock(wasip1.ClockMonotonic, deadline, 0, wasip1.SubscriptionClockAbstime, 3); errno != wasip1.ErrnoSuccess {
		t.Fatalf("subscribe clock: %v", errno)
	}
	start := time.Now()
	events := collect(t, p)
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("absolute deadline fired after %v, want at least ~50ms", elapsed)
	}
	if len(events) != 1 || events[0].Userdata != 3 {
		t.Fatalf("events = %v, want single clock event with userdata 3", events)
	}
}

func TestPollExpiredAbsoluteClockFiresImmediately(t *testing.T) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		t.Fatalf("clock_gettime: %v", err)
	}
	past := wasip1.Timestamp(ts.Nano()) - wasip1.Timestamp(time.Second)

	p := newTestPoller(t, 1)
	if errno := p.Clock(wasip1.ClockMonotonic, past, 0, wasip1.SubscriptionClockAbstime, 9); errno != wasip1.ErrnoSuccess {
		t.Fatalf("subscribe clock: %v", errno)
	}
	start := time.Now()
	events := collect(t, p)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("expired deadline took %v to fire", elapsed)
	}
	if len(events) != 1 || events[0].Userdata != 9 {
		t.Fatalf("events = %v, want single clock event with userdata 9", events)
	}
}

func TestPollWriteReady(t *testing.T) {
	_, w := pipeNodes(t)
	p := newTestPoller(t, 1)
	if errno := p.Write(w, 5); errno != wasip1.ErrnoSuccess {
		t.Fatalf("subscribe write: %v", errno)
	}
	events := collect(t, p)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if ev := events[0]; ev.Userdata != 5 || ev.Type != wasip1.EventtypeFdWrite || ev.Errno != wasip1.ErrnoSuccess {
		t.Errorf("event = %+v, want write/userdata 5/success", ev)
	}
}

func TestPollHangupStillDeliversBufferedData(t *testing.T) {
	r, w := pipeNodes(t)
	payload := []byte("tail")
	if _, errno := w.FdWrite([][]byte{payload}); errno != wasip1.ErrnoSuccess {
		t.Fatalf("write: %v", errno)
	}
	w.Close()

	p := newTestPoller(t, 1)
	if errno := p.Read(r, 11); errno != wasip1.ErrnoSuccess {
		t.Fatalf("subscribe read: %v", errno)
	}
	events := collect(t, p)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Type != wasip1.EventtypeFdRead || ev.Errno != wasip1.ErrnoSuccess {
		t.Fatalf("event = %+v, want successful read event", ev)
	}
	if ev.Flags&wasip1.EventFdReadwriteHangup == 0 {
		t.Error("hang-up flag not set after writer close")
	}
	if ev.NBytes != wasip1.Filesize(len(payload)) {
		t.Errorf("nbytes = %d, want %d still drainable", ev.NBytes, len(payload))
	}
}

func TestPollDirectoryRejected(t *testing.T) {
	d := openDir(t, t.TempDir())
	defer d.Close()
	p := newTestPoller(t, 1)
	if errno := p.Read(d, 1); errno != wasip1.ErrnoInval {
		t.Errorf("errno = %v, want inval for directory subscription", errno)
	}
}

func TestPollClosedNodeRejected(t *testing.T) {
	r, _ := pipeNodes(t)
	r.Close()
	p := newTestPoller(t, 1)
	if errno := p.Read(r, 1); errno != wasip1.ErrnoBadf {
		t.Errorf("errno = %v, want badf", errno)
	}
}

func TestPollZeroCapacity(t *testing.T) {
	p := newTestPoller(t, 0)
	if errno := p.Wait(func(wasip1.Event) {
		t.Error("callback invoked with no subscriptions")
	}); errno != wasip1.ErrnoSuccess {
		t.Fatalf("wait: %v", errno)
	}
	r, _ := pipeNodes(t)
	if errno := p.Read(r, 1); errno != wasip1.ErrnoInval {
		t.Errorf("errno = %v, want inval at zero capacity", errno)
	}
}

func TestPollCapacityExceeded(t *testing.T) {
	r, w := pipeNodes(t)
	p := newTestPoller(t, 1)
	if errno := p.Read(r, 1); errno != wasip1.ErrnoSuccess {
		t.Fatalf("first subscription: %v", errno)
	}
	if errno := p.Write(w, 2); errno != wasip1.ErrnoInval {
		t.Errorf("errno = %v, want inval past capacity", errno)
	}
}

func TestPollDuplicateInterestRejected(t *testing.T) {
	r, _ := pipeNodes(t)
	p := newTestPoller(t, 2)
	if errno := p.Read(r, 1); errno != wasip1.ErrnoSuccess {
		t.Fatalf("first subscription: %v", errno)
	}
	if errno := p.Read(r, 2); errno != wasip1.ErrnoInval {
		t.Errorf("errno = %v, want inval for duplicate read interest", errno)
	}
}

func TestPollSameFdReadAndWrite(t *testing.T) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	a, errno := FromRawFd(fds[0])
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("wrap: %v", errno)
	}
	b, errno := FromRawFd(fds[1])
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("wrap: %v", errno)
	}
	t.Cleanup(func() { a.Close(); b.Close() })

	if _, errno := b.FdWrite([][]byte{[]byte("x")}); errno != wasip1.ErrnoSuccess {
		t.Fatalf("prime peer: %v", errno)
	}

	p := newTestPoller(t, 2)
	if errno := p.Read(a, 1); errno != wasip1.ErrnoSuccess {
		t.Fatalf("read interest: %v", errno)
	}
	if errno := p.Write(a, 2); errno != wasip1.ErrnoSuccess {
		t.Fatalf("write interest: %v", errno)
	}
	events := collect(t, p)
	if len(events) != 2 {
		t.Fatalf("got %d events %v, want read and write", len(events), events)
	}
	seen := map[wasip1.Userdata]wasip1.Eventtype{}
	for _, ev := range events {
		seen[ev.Userdata] = ev.Type
	}
	if seen[1] != wasip1.EventtypeFdRead || seen[2] != wasip1.EventtypeFdWrite {
		t.Errorf("events = %v, want userdata 1 readable and 2 writable", events)
	}
}

func TestPollAfterClose(t *testing.T) {
	r, _ := pipeNodes(t)
	p := newTestPoller(t, 1)
	p.Close()
	if errno := p.Read(r, 1); errno != wasip1.ErrnoBadf {
		t.Errorf("subscribe after close: %v, want badf", errno)
	}
	if errno := p.Wait(func(wasip1.Event) {}); errno != wasip1.ErrnoBadf {
		t.Errorf("wait after close: %v, want badf", errno)
	}
	p.Close() // second close is a no-op
}

func TestPollUnsupportedClock(t *testing.T) {
	p := newTestPoller(t, 1)
	if errno := p.Clock(wasip1.ClockProcessCputimeID, wasip1.Timestamp(time.Millisecond), 0, 0, 1); errno != wasip1.ErrnoNotsup {
		t.Errorf("errno = %v, want notsup", errno)
	}
}
