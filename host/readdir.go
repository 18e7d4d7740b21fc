//go:build unix

package host

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// dirent is one native directory entry parsed out of the cursor buffer.
// name aliases the cursor buffer and is only valid until the next refill.
type dirent struct {
	ino    wasip1.Inode
	ftype  wasip1.Filetype
	name   []byte
	reclen int
}

// FdReaddir fills buf with as many complete packed directory-entry
// records as fit and returns the number of bytes written. An entry whose
// header plus name would overflow the remaining space is omitted entirely;
// the caller resumes by re-invoking with the last consumed entry's cookie.
//
// A cookie that does not match the cursor's position forces a fresh native
// enumeration replayed from the start of the directory until the cookie is
// reached. That recovery is O(directory size); sequential enumeration is
// the common case and never takes it. Cookie zero always restarts from the
// first entry.
func (n *INode) FdReaddir(buf []byte, cookie wasip1.Dircookie) (uint32, wasip1.Errno) {
	if !n.Ok() {
		return 0, wasip1.ErrnoBadf
	}
	if !n.IsDirectory() {
		return 0, wasip1.ErrnoNotdir
	}
	d := &n.dir
	d.ensureBuf()

	if cookie != d.cookie {
		if _, err := unix.Seek(n.Fd(), 0, 0); err != nil {
			return 0, mapErrno(err)
		}
		d.rewind()
		for d.cookie < cookie {
			e, ok, err := d.peek(n.Fd())
			if err != nil {
				return 0, mapErrno(err)
			}
			if !ok {
				// The directory shrank below the requested position;
				// resume from its current end.
				break
			}
			d.consume(e)
		}
	}

	var written int
	for {
		e, ok, err := d.peek(n.Fd())
		if err != nil {
			if written > 0 {
				break
			}
			return 0, mapErrno(err)
		}
		if !ok {
			break
		}
		need := wasip1.DirentSize + len(e.name)
		if need > len(buf)-written {
			break
		}
		written += wasip1.PutDirent(buf[written:], d.cookie+1, e.ino, e.ftype, e.name)
		d.consume(e)
	}
	return uint32(written), wasip1.ErrnoSuccess
}

// peek parses the entry at the head of the cursor, refilling from the
// kernel when the buffer is drained. ok is false at end of directory.
func (d *DirHolder) peek(fd int) (dirent, bool, error) {
	for {
		if d.off < d.used {
			e, ok := parseNativeDirent(d.buf[d.off:d.used])
			if ok {
				return e, true, nil
			}
			// Truncated record at the tail; refill from the kernel.
			d.used = 0
			d.off = 0
		}
		n, err := fillDir(fd, d)
		if err != nil {
			return dirent{}, false, err
		}
		if n == 0 {
			return dirent{}, false, nil
		}
		d.used = n
		d.off = 0
	}
}

// consume advances the cursor past a peeked entry.
func (d *DirHolder) consume(e dirent) {
	d.off += e.reclen
	d.cookie++
}

func ftypeFromDirentType(t uint8) wasip1.Filetype {
	switch t {
	case unix.DT_BLK:
		return wasip1.FiletypeBlockDevice
	case unix.DT_CHR:
		return wasip1.FiletypeCharacterDevice
	case unix.DT_DIR:
		return wasip1.FiletypeDirectory
	case unix.DT_REG:
		return wasip1.FiletypeRegularFile
	case unix.DT_SOCK:
		return wasip1.FiletypeSocketStream
	case unix.DT_LNK:
		return wasip1.FiletypeSymbolicLink
	default:
		return wasip1.FiletypeUnknown
	}
}
