package host

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

const (
	oDsync = unix.O_DSYNC
	oRsync = unix.O_RSYNC
)

func readv(fd int, bufs [][]byte) (int, error) {
	return unix.Readv(fd, bufs)
}

func writev(fd int, bufs [][]byte) (int, error) {
	return unix.Writev(fd, bufs)
}

func preadv(fd int, bufs [][]byte, offset int64) (int, error) {
	return unix.Preadv(fd, bufs, offset)
}

func pwritev(fd int, bufs [][]byte, offset int64) (int, error) {
	return unix.Pwritev(fd, bufs, offset)
}

// FdAdvise passes an access-pattern hint to the kernel. Advice values the
// host cannot act on degrade to a no-op success.
func (n *INode) FdAdvise(offset, length wasip1.Filesize, advice wasip1.Advice) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	var sysAdvice int
	switch advice {
	case wasip1.AdviceNormal:
		sysAdvice = unix.FADV_NORMAL
	case wasip1.AdviceSequential:
		sysAdvice = unix.FADV_SEQUENTIAL
	case wasip1.AdviceRandom:
		sysAdvice = unix.FADV_RANDOM
	case wasip1.AdviceWillneed:
		sysAdvice = unix.FADV_WILLNEED
	case wasip1.AdviceDontneed:
		sysAdvice = unix.FADV_DONTNEED
	case wasip1.AdviceNoreuse:
		sysAdvice = unix.FADV_NOREUSE
	default:
		return wasip1.ErrnoInval
	}
	err := unix.Fadvise(n.Fd(), int64(offset), int64(length), sysAdvice)
	if err != nil && err != unix.ENOSYS && err != unix.ESPIPE {
		return mapErrno(err)
	}
	return wasip1.ErrnoSuccess
}

// FdAllocate reserves space in the file. Filesystems without allocation
// support degrade to a no-op success.
func (n *INode) FdAllocate(offset, length wasip1.Filesize) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	err := unix.Fallocate(n.Fd(), 0, int64(offset), int64(length))
	if err != nil && err != unix.ENOSYS && err != unix.EOPNOTSUPP {
		return mapErrno(err)
	}
	n.invalidate()
	return wasip1.ErrnoSuccess
}

// FdDatasync flushes file data, but not necessarily metadata, to stable
// storage.
func (n *INode) FdDatasync() wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if err := unix.Fdatasync(n.Fd()); err != nil {
		return mapErrno(err)
	}
	return wasip1.ErrnoSuccess
}
