package host

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// TimerHolder owns one kernel timer. On Linux the timerfd is itself
// watchable by the multiplexer, so expiry needs no auxiliary notification
// descriptor. The timer is armed at most once; Reset cancels and releases
// it atomically.
type TimerHolder struct {
	fd FdHolder
}

// Ok reports whether the holder owns an armed timer.
func (t *TimerHolder) Ok() bool {
	return t.fd.Ok()
}

// Reset cancels the timer, if armed, and releases it.
func (t *TimerHolder) Reset() {
	t.fd.Reset()
}

// watchFd returns the descriptor the multiplexer watches for expiry.
func (t *TimerHolder) watchFd() int {
	return t.fd.Fd()
}

// arm creates the timer on the requested clock and schedules its single
// expiry. timeout is absolute on the clock when absolute is set, relative
// otherwise. A failure releases everything acquired in this call.
func (t *TimerHolder) arm(clock wasip1.ClockID, timeout wasip1.Timestamp, absolute bool) wasip1.Errno {
	var sysClock int
	switch clock {
	case wasip1.ClockRealtime:
		sysClock = unix.CLOCK_REALTIME
	case wasip1.ClockMonotonic:
		sysClock = unix.CLOCK_MONOTONIC
	default:
		return wasip1.ErrnoNotsup
	}
	fd, err := unix.TimerfdCreate(sysClock, unix.TFD_CLOEXEC|unix.TFD_NONBLOCK)
	if err != nil {
		return mapErrno(err)
	}
	t.fd.Emplace(fd)
	ns := int64(timeout)
	if ns <= 0 {
		// A zero it_value disarms a timerfd; fire immediately instead.
		ns = 1
		absolute = false
	}
	var flags int
	if absolute {
		flags = unix.TFD_TIMER_ABSTIME
	}
	spec := unix.ItimerSpec{Value: unix.NsecToTimespec(ns)}
	if err := unix.TimerfdSettime(fd, flags, &spec, nil); err != nil {
		t.fd.Reset()
		return mapErrno(err)
	}
	return wasip1.ErrnoSuccess
}

// drain consumes a delivered expiry tick so a reused multiplexer
// registration does not report it again.
func drainTimer(fd int) {
	var buf [8]byte
	_, _ = unix.Read(fd, buf[:])
}
