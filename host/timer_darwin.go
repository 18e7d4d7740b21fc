package host

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// TimerHolder owns one timer on a host whose multiplexer cannot watch a
// kernel timer directly. Expiry is adapted through an auxiliary
// notification pipe: the timer writes one byte to the write end and the
// multiplexer watches the read end. The externally observable contract is
// identical to the timerfd variant.
type TimerHolder struct {
	r, w  FdHolder
	timer *time.Timer
}

// Ok reports whether the holder owns an armed timer.
func (t *TimerHolder) Ok() bool {
	return t.r.Ok()
}

// Reset cancels the timer, if armed, and releases the notification pipe.
// Stop does not wait for a dispatched expiry callback, so ownership of
// the write end depends on its result: stopped in time, Reset closes it;
// otherwise the callback already owns it and closes it after writing, and
// closing it here too could hit a reused descriptor number.
func (t *TimerHolder) Reset() {
	if t.timer != nil {
		if t.timer.Stop() {
			t.w.Reset()
		} else {
			t.w.Release()
		}
		t.timer = nil
	} else {
		t.w.Reset()
	}
	t.r.Reset()
}

// watchFd returns the descriptor the multiplexer watches for expiry.
func (t *TimerHolder) watchFd() int {
	return t.r.Fd()
}

// arm schedules a single expiry. Absolute deadlines are resolved against
// the requested clock before scheduling. A failure releases everything
// acquired in this call.
func (t *TimerHolder) arm(clock wasip1.ClockID, timeout wasip1.Timestamp, absolute bool) wasip1.Errno {
	var sysClock int32
	switch clock {
	case wasip1.ClockRealtime:
		sysClock = unix.CLOCK_REALTIME
	case wasip1.ClockMonotonic:
		sysClock = unix.CLOCK_MONOTONIC
	default:
		return wasip1.ErrnoNotsup
	}

	d := time.Duration(timeout)
	if absolute {
		var now unix.Timespec
		if err := unix.ClockGettime(sysClock, &now); err != nil {
			return mapErrno(err)
		}
		d = time.Duration(int64(timeout) - now.Nano())
	}
	if d <= 0 {
		d = time.Nanosecond
	}

	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return mapErrno(err)
	}
	unix.CloseOnExec(p[0])
	unix.CloseOnExec(p[1])
	if err := unix.SetNonblock(p[1], true); err != nil {
		_ = unix.Close(p[0])
		_ = unix.Close(p[1])
		return mapErrno(err)
	}
	t.r.Emplace(p[0])
	t.w.Emplace(p[1])

	// Once dispatched the callback owns the write end: it writes the
	// expiry byte and closes the descriptor itself. Reset only closes it
	// when Stop catches the timer before dispatch.
	wfd := p[1]
	t.timer = time.AfterFunc(d, func() {
		var b [1]byte
		_, _ = unix.Write(wfd, b[:])
		_ = unix.Close(wfd)
	})
	return wasip1.ErrnoSuccess
}

// drain consumes a delivered expiry byte.
func drainTimer(fd int) {
	var buf [8]byte
	_, _ = unix.Read(fd, buf[:])
}
