//go:build unix

package host

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// mapErrno translates a native errno into the portable enumeration.
// Distinctions callers depend on (noent vs acces, isdir vs notdir,
// notempty, xdev, loop, ...) are preserved; anything without a portable
// counterpart collapses to ErrnoIo.
func mapErrno(err error) wasip1.Errno {
	if err == nil {
		return wasip1.ErrnoSuccess
	}
	errno, ok := err.(unix.Errno)
	if !ok {
		return wasip1.ErrnoIo
	}
	switch errno {
	case unix.E2BIG:
		return wasip1.Errno2big
	case unix.EACCES:
		return wasip1.ErrnoAcces
	case unix.EAGAIN:
		return wasip1.ErrnoAgain
	case unix.EALREADY:
		return wasip1.ErrnoAlready
	case unix.EBADF:
		return wasip1.ErrnoBadf
	case unix.EBUSY:
		return wasip1.ErrnoBusy
	case unix.ECONNABORTED:
		return wasip1.ErrnoConnaborted
	case unix.ECONNREFUSED:
		return wasip1.ErrnoConnrefused
	case unix.ECONNRESET:
		return wasip1.ErrnoConnreset
	case unix.EDEADLK:
		return wasip1.ErrnoDeadlk
	case unix.EDQUOT:
		return wasip1.ErrnoDquot
	case unix.EEXIST:
		return wasip1.ErrnoExist
	case unix.EFAULT:
		return wasip1.ErrnoFault
	case unix.EFBIG:
		return wasip1.ErrnoFbig
	case unix.EINTR:
		return wasip1.ErrnoIntr
	case unix.EINVAL:
		return wasip1.ErrnoInval
	case unix.EIO:
		return wasip1.ErrnoIo
	case unix.EISCONN:
		return wasip1.ErrnoIsconn
	case unix.EISDIR:
		return wasip1.ErrnoIsdir
	case unix.ELOOP:
		return wasip1.ErrnoLoop
	case unix.EMFILE:
		return wasip1.ErrnoMfile
	case unix.EMLINK:
		return wasip1.ErrnoMlink
	case unix.EMSGSIZE:
		return wasip1.ErrnoMsgsize
	case unix.ENAMETOOLONG:
		return wasip1.ErrnoNametoolong
	case unix.ENFILE:
		return wasip1.ErrnoNfile
	case unix.ENOBUFS:
		return wasip1.ErrnoNobufs
	case unix.ENODEV:
		return wasip1.ErrnoNodev
	case unix.ENOENT:
		return wasip1.ErrnoNoent
	case unix.ENOLCK:
		return wasip1.ErrnoNolck
	case unix.ENOMEM:
		return wasip1.ErrnoNomem
	case unix.ENOSPC:
		return wasip1.ErrnoNospc
	case unix.ENOSYS:
		return wasip1.ErrnoNosys
	case unix.ENOTCONN:
		return wasip1.ErrnoNotconn
	case unix.ENOTDIR:
		return wasip1.ErrnoNotdir
	case unix.ENOTEMPTY:
		return wasip1.ErrnoNotempty
	case unix.ENOTSOCK:
		return wasip1.ErrnoNotsock
	case unix.ENOTSUP:
		return wasip1.ErrnoNotsup
	case unix.ENOTTY:
		return wasip1.ErrnoNotty
	case unix.ENXIO:
		return wasip1.ErrnoNxio
	case unix.EOVERFLOW:
		return wasip1.ErrnoOverflow
	case unix.EPERM:
		return wasip1.ErrnoPerm
	case unix.EPIPE:
		return wasip1.ErrnoPipe
	case unix.EPROTO:
		return wasip1.ErrnoProto
	case unix.EPROTONOSUPPORT:
		return wasip1.ErrnoProtonosupport
	case unix.EPROTOTYPE:
		return wasip1.ErrnoPrototype
	case unix.ERANGE:
		return wasip1.ErrnoRange
	case unix.EROFS:
		return wasip1.ErrnoRofs
	case unix.ESPIPE:
		return wasip1.ErrnoSpipe
	case unix.ESTALE:
		return wasip1.ErrnoStale
	case unix.ETIMEDOUT:
		return wasip1.ErrnoTimedout
	case unix.ETXTBSY:
		return wasip1.ErrnoTxtbsy
	case unix.EXDEV:
		return wasip1.ErrnoXdev
	default:
		return wasip1.ErrnoIo
	}
}
