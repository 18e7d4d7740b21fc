package host

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func fillDir(fd int, d *DirHolder) (int, error) {
	return unix.Getdirentries(fd, d.buf, &d.base)
}

// parseNativeDirent decodes one __getdirentries64 record.
func parseNativeDirent(b []byte) (dirent, bool) {
	hdr := int(unsafe.Offsetof(unix.Dirent{}.Name))
	if len(b) < hdr {
		return dirent{}, false
	}
	de := (*unix.Dirent)(unsafe.Pointer(&b[0]))
	reclen := int(de.Reclen)
	namlen := int(de.Namlen)
	if reclen < hdr || reclen > len(b) || namlen > reclen-hdr {
		return dirent{}, false
	}
	name := b[hdr : hdr+namlen]
	return dirent{
		ino:    de.Ino,
		ftype:  ftypeFromDirentType(de.Type),
		name:   name,
		reclen: reclen,
	}, true
}
