package host

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// Hosts without O_DSYNC/O_RSYNC fold both onto full synchronous I/O.
const (
	oDsync = unix.O_SYNC
	oRsync = unix.O_SYNC
)

// The x/sys vector calls are Linux-only; elsewhere scatter/gather is a
// per-buffer loop that stops on the first short transfer.

func readv(fd int, bufs [][]byte) (int, error) {
	var total int
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		n, err := unix.Read(fd, b)
		if n > 0 {
			total += n
		}
		if err != nil {
			if total > 0 {
				return total, nil
			}
			return 0, err
		}
		if n < len(b) {
			break
		}
	}
	return total, nil
}

func writev(fd int, bufs [][]byte) (int, error) {
	var total int
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		n, err := unix.Write(fd, b)
		if n > 0 {
			total += n
		}
		if err != nil {
			if total > 0 {
				return total, nil
			}
			return 0, err
		}
		if n < len(b) {
			break
		}
	}
	return total, nil
}

func preadv(fd int, bufs [][]byte, offset int64) (int, error) {
	var total int
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		n, err := unix.Pread(fd, b, offset+int64(total))
		if n > 0 {
			total += n
		}
		if err != nil {
			if total > 0 {
				return total, nil
			}
			return 0, err
		}
		if n < len(b) {
			break
		}
	}
	return total, nil
}

func pwritev(fd int, bufs [][]byte, offset int64) (int, error) {
	var total int
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		n, err := unix.Pwrite(fd, b, offset+int64(total))
		if n > 0 {
			total += n
		}
		if err != nil {
			if total > 0 {
				return total, nil
			}
			return 0, err
		}
		if n < len(b) {
			break
		}
	}
	return total, nil
}

// FdAdvise has no native counterpart here; valid advice degrades to a
// no-op success.
func (n *INode) FdAdvise(_, _ wasip1.Filesize, advice wasip1.Advice) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if advice > wasip1.AdviceNoreuse {
		return wasip1.ErrnoInval
	}
	return wasip1.ErrnoSuccess
}

// FdAllocate has no native counterpart here; the reservation degrades to
// a no-op success.
func (n *INode) FdAllocate(_, _ wasip1.Filesize) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	return wasip1.ErrnoSuccess
}

// FdDatasync falls back to a full fsync.
func (n *INode) FdDatasync() wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if err := unix.Fsync(n.Fd()); err != nil {
		return mapErrno(err)
	}
	return wasip1.ErrnoSuccess
}
