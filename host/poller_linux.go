package host

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// fionread is the bytes-readable ioctl; x/sys spells it TIOCINQ here.
const fionread = unix.TIOCINQ

// fdInterest merges the read and write subscriptions that watch one
// descriptor into a single multiplexer registration.
type fdInterest struct {
	events   uint32
	readSub  int // subscription index, -1 when absent; clock expiry counts as read
	writeSub int
}

// Poller implements the unified readiness/timeout wait on epoll. Clock
// subscriptions are timerfds registered in the same watch set as
// descriptor readiness, so a single blocking epoll_wait serves every
// subscription kind.
type Poller struct {
	mux    FdHolder
	subs   []subscription
	timers []TimerHolder
	events []unix.EpollEvent
	fds    map[int]*fdInterest
}

// NewPoller creates a poller for exactly capacity subscriptions. Result
// storage is preallocated at that size; registrations past it are
// rejected.
func NewPoller(capacity int) (*Poller, wasip1.Errno) {
	if capacity < 0 {
		return nil, wasip1.ErrnoInval
	}
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, mapErrno(err)
	}
	return &Poller{
		mux:    NewFdHolder(epfd),
		subs:   make([]subscription, 0, capacity),
		timers: make([]TimerHolder, 0, capacity),
		events: make([]unix.EpollEvent, max(capacity, 1)),
		fds:    make(map[int]*fdInterest, capacity),
	}, wasip1.ErrnoSuccess
}

// Close releases the multiplexer and every owned timer exactly once.
func (p *Poller) Close() {
	for i := range p.timers {
		p.timers[i].Reset()
	}
	p.timers = p.timers[:0]
	p.subs = p.subs[:0]
	clear(p.fds)
	p.mux.Reset()
}

// Clock registers a deadline subscription on the given clock. timeout is
// absolute when flags carries SubscriptionClockAbstime, relative
// otherwise. precision is accepted for ABI compatibility and unused.
func (p *Poller) Clock(id wasip1.ClockID, timeout, _ wasip1.Timestamp, flags wasip1.SubclockFlags, userdata wasip1.Userdata) wasip1.Errno {
	if !p.mux.Ok() {
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
	if errno := p.watch(fd, wasip1.EventtypeClock, len(p.subs)); errno != wasip1.ErrnoSuccess {
		t.Reset()
		return errno
	}
	p.timers = append(p.timers, t)
	p.subs = append(p.subs, subscription{userdata: userdata, typ: wasip1.EventtypeClock, fd: fd})
	return wasip1.ErrnoSuccess
}

// Read registers interest in the node becoming readable.
func (p *Poller) Read(n *INode, userdata wasip1.Userdata) wasip1.Errno {
	return p.subscribeFd(n, wasip1.EventtypeFdRead, userdata)
}

// Write registers interest in the node becoming writable.
func (p *Poller) Write(n *INode, userdata wasip1.Userdata) wasip1.Errno {
	return p.subscribeFd(n, wasip1.EventtypeFdWrite, userdata)
}

func (p *Poller) subscribeFd(n *INode, typ wasip1.Eventtype, userdata wasip1.Userdata) wasip1.Errno {
	if !p.mux.Ok() {
		return wasip1.ErrnoBadf
	}
	if errno := checkPollable(n); errno != wasip1.ErrnoSuccess {
		return errno
	}
	if len(p.subs) == cap(p.subs) {
		return wasip1.ErrnoInval
	}
	if errno := p.watch(n.Fd(), typ, len(p.subs)); errno != wasip1.ErrnoSuccess {
		return errno
	}
	p.subs = append(p.subs, subscription{userdata: userdata, typ: typ, fd: n.Fd()})
	return wasip1.ErrnoSuccess
}

// watch adds or widens the multiplexer registration for fd. Bookkeeping
// commits only after the syscall succeeds, so a failed registration
// leaves the watch set unchanged.
func (p *Poller) watch(fd int, typ wasip1.Eventtype, idx int) wasip1.Errno {
	fi := p.fds[fd]
	add := fi == nil
	if add {
		fi = &fdInterest{readSub: -1, writeSub: -1}
	}
	events := fi.events
	readSub, writeSub := fi.readSub, fi.writeSub
	if typ == wasip1.EventtypeFdWrite {
		if writeSub >= 0 {
			return wasip1.ErrnoInval
		}
		writeSub = idx
		events |= unix.EPOLLOUT
	} else {
		if readSub >= 0 {
			return wasip1.ErrnoInval
		}
		readSub = idx
		events |= unix.EPOLLIN | unix.EPOLLRDHUP
	}
	ev := unix.EpollEvent{Events: events, Fd: int32(fd)}
	op := unix.EPOLL_CTL_MOD
	if add {
		op = unix.EPOLL_CTL_ADD
	}
	if err := unix.EpollCtl(p.mux.Fd(), op, fd, &ev); err != nil {
		return mapErrno(err)
	}
	fi.events = events
	fi.readSub = readSub
	fi.writeSub = writeSub
	if add {
		p.fds[fd] = fi
	}
	return wasip1.ErrnoSuccess
}

// Wait blocks on the multiplexer until at least one watched interest is
// satisfied, then invokes cb exactly once per ready subscription. With
// zero registered subscriptions it returns immediately. A transient
// signal interruption is retried internally; a multiplexer failure is
// fatal to the whole wait and surfaces as its single error outcome.
func (p *Poller) Wait(cb EventCallback) wasip1.Errno {
	if !p.mux.Ok() {
		return wasip1.ErrnoBadf
	}
	if len(p.subs) == 0 {
		return wasip1.ErrnoSuccess
	}
	var nready int
	for {
		n, err := unix.EpollWait(p.mux.Fd(), p.events, -1)
		if err == unix.EINTR {
			Logger().Debug("epoll wait interrupted, retrying")
			continue
		}
		if err != nil {
			return mapErrno(err)
		}
		nready = n
		break
	}
	for _, ev := range p.events[:nready] {
		fi := p.fds[int(ev.Fd)]
		if fi == nil {
			continue
		}
		if fi.readSub >= 0 && ev.Events&(unix.EPOLLIN|unix.EPOLLRDHUP|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
			cb(p.readEvent(&p.subs[fi.readSub], ev.Events))
		}
		if fi.writeSub >= 0 && ev.Events&(unix.EPOLLOUT|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
			cb(writeEvent(&p.subs[fi.writeSub], ev.Events))
		}
	}
	return wasip1.ErrnoSuccess
}

func (p *Poller) readEvent(sub *subscription, events uint32) wasip1.Event {
	out := wasip1.Event{Userdata: sub.userdata, Type: sub.typ}
	if sub.typ == wasip1.EventtypeClock {
		drainTimer(sub.fd)
		return out
	}
	if events&unix.EPOLLERR != 0 {
		out.Errno = wasip1.ErrnoIo
	} else {
		out.NBytes, out.Errno = readyBytes(sub.fd)
	}
	// Peer close is reported as a readable event with the hang-up flag:
	// buffered data must still be drainable after FIN.
	if events&(unix.EPOLLRDHUP|unix.EPOLLHUP) != 0 {
		out.Flags |= wasip1.EventFdReadwriteHangup
	}
	return out
}

func writeEvent(sub *subscription, events uint32) wasip1.Event {
	out := wasip1.Event{Userdata: sub.userdata, Type: wasip1.EventtypeFdWrite}
	if events&unix.EPOLLERR != 0 {
		out.Errno = wasip1.ErrnoIo
	}
	if events&unix.EPOLLHUP != 0 {
		out.Flags |= wasip1.EventFdReadwriteHangup
	}
	return out
}
