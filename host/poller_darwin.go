package host

import (
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// fionread is the bytes-readable ioctl; x/sys does not export it here.
const fionread = syscall.FIONREAD

// Poller implements the unified readiness/timeout wait on poll(2). Clock
// subscriptions are pipe-backed timers whose read ends join the same
// pollfd set as descriptor readiness, so a single blocking poll serves
// every subscription kind.
type Poller struct {
	subs   []subscription
	timers []TimerHolder
	fds    []unix.PollFd
	open   bool
}

// NewPoller creates a poller for exactly capacity subscriptions. Result
// storage is preallocated at that size; registrations past it are
// rejected.
func NewPoller(capacity int) (*Poller, wasip1.Errno) {
	if capacity < 0 {
		return nil, wasip1.ErrnoInval
	}
	return &Poller{
		subs:   make([]subscription, 0, capacity),
		timers: make([]TimerHolder, 0, capacity),
		fds:    make([]unix.PollFd, 0, capacity),
		open:   true,
	}, wasip1.ErrnoSuccess
}

// Close releases every owned timer exactly once.
func (p *Poller) Close() {
	for i := range p.timers {
		p.timers[i].Reset()
	}
	p.timers = p.timers[:0]
	p.subs = p.subs[:0]
	p.fds = p.fds[:0]
	p.open = false
}

// Clock registers a deadline subscription on the given clock. timeout is
// absolute when flags carries SubscriptionClockAbstime, relative
// otherwise. precision is accepted for ABI compatibility and unused.
func (p *Poller) Clock(id wasip1.ClockID, timeout, _ wasip1.Timestamp, flags wasip1.SubclockFlags, userdata wasip1.Userdata) wasip1.Errno {
	if !p.open {
		return wasip1.ErrnoBadf
	}
	if len(p.subs) == cap(p.subs) {
		return wasip1.ErrnoInval
	}
	var t TimerHolder
	if errno := t.arm(id, timeout, flags&wasip1.SubscriptionClockAbstime != 0); errno != wasip1.ErrnoSuccess {
		return errno
	}
	fd := t.watchFd()
	p.timers = append(p.timers, t)
	p.subs = append(p.subs, subscription{userdata: userdata, typ: wasip1.EventtypeClock, fd: fd})
	p.fds = append(p.fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	return wasip1.ErrnoSuccess
}

// Read registers interest in the node becoming readable.
func (p *Poller) Read(n *INode, userdata wasip1.Userdata) wasip1.Errno {
	return p.subscribeFd(n, wasip1.EventtypeFdRead, userdata, unix.POLLIN)
}

// Write registers interest in the node becoming writable.
func (p *Poller) Write(n *INode, userdata wasip1.Userdata) wasip1.Errno {
	return p.subscribeFd(n, wasip1.EventtypeFdWrite, userdata, unix.POLLOUT)
}

func (p *Poller) subscribeFd(n *INode, typ wasip1.Eventtype, userdata wasip1.Userdata, events int16) wasip1.Errno {
	if !p.open {
		return wasip1.ErrnoBadf
	}
	if errno := checkPollable(n); errno != wasip1.ErrnoSuccess {
		return errno
	}
	if len(p.subs) == cap(p.subs) {
		return wasip1.ErrnoInval
	}
	for i := range p.subs {
		if p.subs[i].fd == n.Fd() && p.subs[i].typ == typ {
			return wasip1.ErrnoInval
		}
	}
	p.subs = append(p.subs, subscription{userdata: userdata, typ: typ, fd: n.Fd()})
	p.fds = append(p.fds, unix.PollFd{Fd: int32(n.Fd()), Events: events})
	return wasip1.ErrnoSuccess
}

// Wait blocks on poll until at least one watched interest is satisfied,
// then invokes cb exactly once per ready subscription. With zero
// registered subscriptions it returns immediately. A transient signal
// interruption is retried internally; a poll failure is fatal to the
// whole wait and surfaces as its single error outcome.
func (p *Poller) Wait(cb EventCallback) wasip1.Errno {
	if !p.open {
		return wasip1.ErrnoBadf
	}
	if len(p.subs) == 0 {
		return wasip1.ErrnoSuccess
	}
	for {
		_, err := unix.Poll(p.fds, -1)
		if err == unix.EINTR {
			Logger().Debug("poll interrupted, retrying")
			continue
		}
		if err != nil {
			return mapErrno(err)
		}
		break
	}
	for i := range p.fds {
		revents := p.fds[i].Revents
		if revents == 0 {
			continue
		}
		sub := &p.subs[i]
		out := wasip1.Event{Userdata: sub.userdata, Type: sub.typ}
		switch sub.typ {
		case wasip1.EventtypeClock:
			if revents&(unix.POLLIN|unix.POLLHUP) == 0 {
				continue
			}
			drainTimer(sub.fd)
		case wasip1.EventtypeFdRead:
			if revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) == 0 {
				continue
			}
			switch {
			case revents&unix.POLLNVAL != 0:
				out.Errno = wasip1.ErrnoBadf
			case revents&unix.POLLERR != 0:
				out.Errno = wasip1.ErrnoIo
			default:
				out.NBytes, out.Errno = readyBytes(sub.fd)
			}
			// Peer close is reported as a readable event with the
			// hang-up flag: buffered data must still be drainable.
			if revents&unix.POLLHUP != 0 {
				out.Flags |= wasip1.EventFdReadwriteHangup
			}
		case wasip1.EventtypeFdWrite:
			if revents&(unix.POLLOUT|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) == 0 {
				continue
			}
			switch {
			case revents&unix.POLLNVAL != 0:
				out.Errno = wasip1.ErrnoBadf
			case revents&unix.POLLERR != 0:
				out.Errno = wasip1.ErrnoIo
			}
			if revents&unix.POLLHUP != 0 {
				out.Flags |= wasip1.EventFdReadwriteHangup
			}
		}
		cb(out)
	}
	return wasip1.ErrnoSuccess
}
