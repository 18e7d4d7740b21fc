//go:build unix

package host

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// A scoped resource owns exactly one native OS resource and releases it
// exactly once: on Reset, on Emplace of a replacement, or never again once
// Release has disowned it. FdHolder, DirHolder, and TimerHolder all follow
// this discipline.
type scoped interface {
	Ok() bool
	Reset()
}

var (
	_ scoped = (*FdHolder)(nil)
	_ scoped = (*DirHolder)(nil)
	_ scoped = (*TimerHolder)(nil)
)

// FdHolder owns a single native file descriptor. The zero value is empty.
// Descriptors are stored with a +1 bias so that the zero value holds
// nothing rather than aliasing descriptor 0.
//
// Holders must not be copied; hand them between call sites by pointer or
// by transferring the value and never touching the source again.
type FdHolder struct {
	biased int
}

// NewFdHolder takes ownership of fd. Negative values produce an empty
// holder.
func NewFdHolder(fd int) FdHolder {
	if fd < 0 {
		return FdHolder{}
	}
	return FdHolder{biased: fd + 1}
}

// Ok reports whether the holder currently owns a descriptor.
func (h *FdHolder) Ok() bool {
	return h.biased != 0
}

// Fd returns the owned descriptor, or -1 if the holder is empty.
// Ownership is not transferred.
func (h *FdHolder) Fd() int {
	return h.biased - 1
}

// Reset closes the owned descriptor, if any, and empties the holder.
// The standard descriptors 0, 1 and 2 are never closed: the pre-opened
// stdio nodes wrap them without owning the underlying streams.
func (h *FdHolder) Reset() {
	if h.biased == 0 {
		return
	}
	if fd := h.biased - 1; fd > 2 {
		_ = unix.Close(fd)
	}
	h.biased = 0
}

// Release disowns and returns the descriptor without closing it, or
// returns -1 if the holder is empty.
func (h *FdHolder) Release() int {
	fd := h.biased - 1
	h.biased = 0
	return fd
}

// Emplace releases the current descriptor, if any, and takes ownership of
// fd.
func (h *FdHolder) Emplace(fd int) {
	h.Reset()
	*h = NewFdHolder(fd)
}

// DirHolder is the enumeration cursor of a directory node. It shares the
// directory's descriptor (owned by the enclosing INode) and keeps the
// state a single getdents-style primitive does not provide by itself: a
// reusable raw-entry buffer and the cookie of the last entry handed out.
//
// Buffer contents are only valid through the most recent refill. Cookie
// reflects the enumeration position at the end of the last consumed
// entry; a caller-requested cookie that does not match forces a rewind
// and replay from the start of the directory.
type DirHolder struct {
	buf    []byte
	used   int // bytes of buf filled by the last refill
	off    int // consumed prefix of buf
	base   uintptr
	cookie wasip1.Dircookie
}

// Ok reports whether the cursor has been initialized.
func (d *DirHolder) Ok() bool {
	return d.buf != nil
}

// Reset drops all cursor state. The next read starts a fresh native
// enumeration.
func (d *DirHolder) Reset() {
	d.buf = nil
	d.used = 0
	d.off = 0
	d.base = 0
	d.cookie = 0
}

// rewind clears buffered entries and the cookie but keeps the allocated
// buffer for reuse.
func (d *DirHolder) rewind() {
	d.used = 0
	d.off = 0
	d.base = 0
	d.cookie = 0
}

const dirBufSize = 4096

func (d *DirHolder) ensureBuf() {
	if d.buf == nil {
		d.buf = make([]byte, dirBufSize)
	}
}
