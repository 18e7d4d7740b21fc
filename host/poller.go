//go:build unix

package host

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// EventCallback receives the outcome of one ready subscription. Wait
// invokes it exactly once per satisfied interest, in the multiplexer's
// delivery order; callers must not assume FIFO with respect to
// registration.
type EventCallback func(wasip1.Event)

// subscription is one registered interest awaiting a result slot.
type subscription struct {
	userdata wasip1.Userdata
	typ      wasip1.Eventtype
	fd       int
}

// checkPollable validates a node for a read or write subscription.
func checkPollable(n *INode) wasip1.Errno {
	if n == nil || !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if n.IsDirectory() {
		return wasip1.ErrnoInval
	}
	return wasip1.ErrnoSuccess
}

// readyBytes reports the byte-count hint for a readable descriptor: the
// bytes available to read right now. A failing query becomes the event's
// error code rather than failing the whole wait.
func readyBytes(fd int) (wasip1.Filesize, wasip1.Errno) {
	nb, err := unix.IoctlGetInt(fd, fionread)
	if err != nil {
		return 0, mapErrno(err)
	}
	if nb < 0 {
		nb = 0
	}
	return wasip1.Filesize(nb), wasip1.ErrnoSuccess
}
