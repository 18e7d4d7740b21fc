package wasip1

import "encoding/binary"

// Directory entries are written into the caller's buffer as a packed
// sequence of records: a fixed 24-byte header immediately followed by the
// raw (non NUL-terminated) name bytes. Records are back to back with no
// padding between them; a record that would not fully fit in the remaining
// space is omitted entirely.
const (
	// DirentSize is the size of the fixed dirent header in bytes.
	DirentSize = 24

	direntNextOff   = 0  // d_next: Dircookie, 64-bit
	direntInoOff    = 8  // d_ino: Inode, 64-bit
	direntNamlenOff = 16 // d_namlen: 32-bit
	direntTypeOff   = 20 // d_type: 8-bit, 3 bytes padding
)

// PutDirent encodes one directory entry header plus name into buf and
// returns the number of bytes written. buf must hold at least
// DirentSize+len(name) bytes.
func PutDirent(buf []byte, next Dircookie, ino Inode, ftype Filetype, name []byte) int {
	binary.LittleEndian.PutUint64(buf[direntNextOff:], next)
	binary.LittleEndian.PutUint64(buf[direntInoOff:], ino)
	binary.LittleEndian.PutUint32(buf[direntNamlenOff:], uint32(len(name)))
	buf[direntTypeOff] = uint8(ftype)
	buf[direntTypeOff+1] = 0
	buf[direntTypeOff+2] = 0
	buf[direntTypeOff+3] = 0
	copy(buf[DirentSize:], name)
	return DirentSize + len(name)
}

// ParseDirent decodes one directory entry header from buf. It is the
// inverse of PutDirent's header encoding and is intended for tests and
// tooling that walk a filled readdir buffer.
func ParseDirent(buf []byte) (next Dircookie, ino Inode, namlen uint32, ftype Filetype) {
	next = binary.LittleEndian.Uint64(buf[direntNextOff:])
	ino = binary.LittleEndian.Uint64(buf[direntInoOff:])
	namlen = binary.LittleEndian.Uint32(buf[direntNamlenOff:])
	ftype = Filetype(buf[direntTypeOff])
	return
}
