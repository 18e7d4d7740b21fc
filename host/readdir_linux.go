package host

import (
	"bytes"
	"unsafe"

	"golang.org/x/sys/unix"
)

func fillDir(fd int, d *DirHolder) (int, error) {
	return unix.Getdents(fd, d.buf)
}

// parseNativeDirent decodes one getdents64 record. The kernel packs
// records 8-byte aligned, so the header cast is safe at any record
// boundary.
func parseNativeDirent(b []byte) (dirent, bool) {
	hdr := int(unsafe.Offsetof(unix.Dirent{}.Name))
	if len(b) < hdr {
		return dirent{}, false
	}
	de := (*unix.Dirent)(unsafe.Pointer(&b[0]))
	reclen := int(de.Reclen)
	if reclen < hdr || reclen > len(b) {
		return dirent{}, false
	}
	name := b[hdr:reclen]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return dirent{
		ino:    de.Ino,
		ftype:  ftypeFromDirentType(de.Type),
		name:   name,
		reclen: reclen,
	}, true
}
