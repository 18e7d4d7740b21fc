//go:build unix

package host

import (
	"math"
	"time"

	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// defaultFileMode is the permission mode for files created through Open
// and PathOpen.
const defaultFileMode = 0o644

// INode is one open file, directory, or socket. It owns its descriptor
// exclusively; the variant is fixed at creation from the native file type
// and never changes. A file-status snapshot is fetched lazily and
// invalidated by every mutating operation.
type INode struct {
	FdHolder
	ftype wasip1.Filetype
	stat  *wasip1.Filestat
	dir   DirHolder
}

// Stdin returns the pre-opened standard input node. The underlying
// descriptor is wrapped, not owned: closing the node never closes fd 0.
func Stdin() *INode { return stdio(0) }

// Stdout returns the pre-opened standard output node.
func Stdout() *INode { return stdio(1) }

// Stderr returns the pre-opened standard error node.
func Stderr() *INode { return stdio(2) }

func stdio(fd int) *INode {
	n := &INode{FdHolder: NewFdHolder(fd)}
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err == nil {
		n.ftype = fromUnixStat(&st).Filetype
	}
	return n
}

// FromRawFd wraps an already-open descriptor, taking ownership of it. The
// variant is probed once from the native file type. Callers duplicating a
// descriptor before wrapping are on their own: two nodes over the same
// resource are not coordinated by this layer.
func FromRawFd(fd int) (*INode, wasip1.Errno) {
	if fd < 0 {
		return nil, wasip1.ErrnoBadf
	}
	return newINode(fd)
}

// Open resolves path (absolute, or relative to the working directory) and
// returns a new node owning the opened descriptor.
func Open(path string, oflags wasip1.Oflags, fdflags wasip1.Fdflags, access wasip1.AccessFlags) (*INode, wasip1.Errno) {
	sys, errno := openSysFlags(oflags, fdflags, access, wasip1.LookupSymlinkFollow)
	if errno != wasip1.ErrnoSuccess {
		return nil, errno
	}
	fd, err := unix.Open(path, sys, defaultFileMode)
	if err != nil {
		return nil, mapErrno(err)
	}
	return newINode(fd)
}

// PathOpen opens path relative to the directory node, like openat. The
// node must be directory-typed. Symlink escapes beyond what the native
// directory-relative resolution prevents are the capability layer's
// concern, not checked here.
func (n *INode) PathOpen(path string, lookup wasip1.LookupFlags, oflags wasip1.Oflags, fdflags wasip1.Fdflags, access wasip1.AccessFlags) (*INode, wasip1.Errno) {
	if !n.Ok() {
		return nil, wasip1.ErrnoBadf
	}
	if !n.IsDirectory() {
		return nil, wasip1.ErrnoNotdir
	}
	sys, errno := openSysFlags(oflags, fdflags, access, lookup)
	if errno != wasip1.ErrnoSuccess {
		return nil, errno
	}
	fd, err := unix.Openat(n.Fd(), path, sys, defaultFileMode)
	if err != nil {
		return nil, mapErrno(err)
	}
	return newINode(fd)
}

func newINode(fd int) (*INode, wasip1.Errno) {
	if fd > math.MaxInt32 {
		_ = unix.Close(fd)
		return nil, wasip1.ErrnoMfile
	}
	n := &INode{FdHolder: NewFdHolder(fd)}
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		n.Reset()
		return nil, mapErrno(err)
	}
	fs := fromUnixStat(&st)
	n.ftype = fs.Filetype
	n.stat = &fs
	return n, wasip1.ErrnoSuccess
}

func openSysFlags(oflags wasip1.Oflags, fdflags wasip1.Fdflags, access wasip1.AccessFlags, lookup wasip1.LookupFlags) (int, wasip1.Errno) {
	sys := unix.O_CLOEXEC
	switch {
	case access&wasip1.AccessRead != 0 && access&wasip1.AccessWrite != 0:
		sys |= unix.O_RDWR
	case access&wasip1.AccessWrite != 0:
		sys |= unix.O_WRONLY
	default:
		sys |= unix.O_RDONLY
	}
	if oflags&wasip1.OflagsCreat != 0 {
		sys |= unix.O_CREAT
	}
	if oflags&wasip1.OflagsDirectory != 0 {
		sys |= unix.O_DIRECTORY
	}
	if oflags&wasip1.OflagsExcl != 0 {
		sys |= unix.O_EXCL
	}
	if oflags&wasip1.OflagsTrunc != 0 {
		if access&wasip1.AccessWrite == 0 {
			return 0, wasip1.ErrnoInval
		}
		sys |= unix.O_TRUNC
	}
	sys |= fdflagsToSys(fdflags)
	if lookup&wasip1.LookupSymlinkFollow == 0 {
		sys |= unix.O_NOFOLLOW
	}
	return sys, wasip1.ErrnoSuccess
}

func fdflagsToSys(f wasip1.Fdflags) int {
	var sys int
	if f&wasip1.FdflagsAppend != 0 {
		sys |= unix.O_APPEND
	}
	if f&wasip1.FdflagsDsync != 0 {
		sys |= oDsync
	}
	if f&wasip1.FdflagsNonblock != 0 {
		sys |= unix.O_NONBLOCK
	}
	if f&wasip1.FdflagsRsync != 0 {
		sys |= oRsync
	}
	if f&wasip1.FdflagsSync != 0 {
		sys |= unix.O_SYNC
	}
	return sys
}

// fdflagsFromSys is the reverse of fdflagsToSys. The sync flags are
// mask comparisons because the native constants overlap: on Linux
// O_SYNC contains the O_DSYNC bit and O_RSYNC equals O_SYNC, and hosts
// folding all three onto O_SYNC report all three set.
func fdflagsFromSys(sys int) wasip1.Fdflags {
	var f wasip1.Fdflags
	if sys&unix.O_APPEND != 0 {
		f |= wasip1.FdflagsAppend
	}
	if sys&oDsync == oDsync {
		f |= wasip1.FdflagsDsync
	}
	if sys&unix.O_NONBLOCK != 0 {
		f |= wasip1.FdflagsNonblock
	}
	if sys&oRsync == oRsync {
		f |= wasip1.FdflagsRsync
	}
	if sys&unix.O_SYNC == unix.O_SYNC {
		f |= wasip1.FdflagsSync
	}
	return f
}

// Close releases the descriptor and all attached cursor state. It is safe
// to call more than once; the release happens exactly once.
func (n *INode) Close() {
	n.dir.Reset()
	n.stat = nil
	n.Reset()
}

func (n *INode) invalidate() {
	n.stat = nil
}

func (n *INode) ensureStat() (*wasip1.Filestat, wasip1.Errno) {
	if n.stat != nil {
		return n.stat, wasip1.ErrnoSuccess
	}
	if !n.Ok() {
		return nil, wasip1.ErrnoBadf
	}
	var st unix.Stat_t
	if err := unix.Fstat(n.Fd(), &st); err != nil {
		return nil, mapErrno(err)
	}
	fs := fromUnixStat(&st)
	n.stat = &fs
	return n.stat, wasip1.ErrnoSuccess
}

// Filetype reports the node's variant, fixed at creation.
func (n *INode) Filetype() wasip1.Filetype {
	return n.ftype
}

// IsDirectory reports whether the node is directory-typed.
func (n *INode) IsDirectory() bool {
	return n.ftype == wasip1.FiletypeDirectory
}

// IsSymlink reports whether the node is a symbolic link.
func (n *INode) IsSymlink() bool {
	return n.ftype == wasip1.FiletypeSymbolicLink
}

func (n *INode) isSocket() bool {
	return n.ftype == wasip1.FiletypeSocketStream || n.ftype == wasip1.FiletypeSocketDgram
}

// Filesize reports the current size from the status snapshot.
func (n *INode) Filesize() (wasip1.Filesize, wasip1.Errno) {
	fs, errno := n.ensureStat()
	if errno != wasip1.ErrnoSuccess {
		return 0, errno
	}
	return fs.Size, wasip1.ErrnoSuccess
}

// CanBrowse reports whether the calling user holds traversal permission on
// a directory node. Used to pre-validate directory-relative opens without
// attempting them.
func (n *INode) CanBrowse() bool {
	if !n.Ok() || !n.IsDirectory() {
		return false
	}
	return unix.Faccessat(n.Fd(), ".", unix.X_OK, unix.AT_EACCESS) == nil
}

// FdRead reads into the buffers in order, advancing the implicit cursor.
// A transfer shorter than the total buffer space is success.
func (n *INode) FdRead(bufs [][]byte) (wasip1.Filesize, wasip1.Errno) {
	if !n.Ok() {
		return 0, wasip1.ErrnoBadf
	}
	nread, err := readv(n.Fd(), bufs)
	if err != nil {
		return 0, mapErrno(err)
	}
	return wasip1.Filesize(nread), wasip1.ErrnoSuccess
}

// FdWrite writes the buffers in order, advancing the implicit cursor.
func (n *INode) FdWrite(bufs [][]byte) (wasip1.Filesize, wasip1.Errno) {
	if !n.Ok() {
		return 0, wasip1.ErrnoBadf
	}
	nwritten, err := writev(n.Fd(), bufs)
	if err != nil {
		return 0, mapErrno(err)
	}
	n.invalidate()
	return wasip1.Filesize(nwritten), wasip1.ErrnoSuccess
}

// FdPread reads at offset without touching the implicit cursor.
func (n *INode) FdPread(bufs [][]byte, offset wasip1.Filesize) (wasip1.Filesize, wasip1.Errno) {
	if !n.Ok() {
		return 0, wasip1.ErrnoBadf
	}
	if offset > math.MaxInt64 {
		return 0, wasip1.ErrnoInval
	}
	nread, err := preadv(n.Fd(), bufs, int64(offset))
	if err != nil {
		return 0, mapErrno(err)
	}
	return wasip1.Filesize(nread), wasip1.ErrnoSuccess
}

// FdPwrite writes at offset without touching the implicit cursor.
func (n *INode) FdPwrite(bufs [][]byte, offset wasip1.Filesize) (wasip1.Filesize, wasip1.Errno) {
	if !n.Ok() {
		return 0, wasip1.ErrnoBadf
	}
	if offset > math.MaxInt64 {
		return 0, wasip1.ErrnoInval
	}
	nwritten, err := pwritev(n.Fd(), bufs, int64(offset))
	if err != nil {
		return 0, mapErrno(err)
	}
	n.invalidate()
	return wasip1.Filesize(nwritten), wasip1.ErrnoSuccess
}

// FdSeek adjusts the implicit cursor and reports its new position.
func (n *INode) FdSeek(offset wasip1.Filedelta, whence wasip1.Whence) (wasip1.Filesize, wasip1.Errno) {
	if !n.Ok() {
		return 0, wasip1.ErrnoBadf
	}
	var sysWhence int
	switch whence {
	case wasip1.WhenceSet:
		sysWhence = 0
	case wasip1.WhenceCur:
		sysWhence = 1
	case wasip1.WhenceEnd:
		sysWhence = 2
	default:
		return 0, wasip1.ErrnoInval
	}
	pos, err := unix.Seek(n.Fd(), offset, sysWhence)
	if err != nil {
		return 0, mapErrno(err)
	}
	return wasip1.Filesize(pos), wasip1.ErrnoSuccess
}

// FdTell reports the implicit cursor position.
func (n *INode) FdTell() (wasip1.Filesize, wasip1.Errno) {
	return n.FdSeek(0, wasip1.WhenceCur)
}

// FdFdstatGet reports the node's file type and current descriptor flags.
func (n *INode) FdFdstatGet() (wasip1.Fdstat, wasip1.Errno) {
	if !n.Ok() {
		return wasip1.Fdstat{}, wasip1.ErrnoBadf
	}
	sys, err := unix.FcntlInt(uintptr(n.Fd()), unix.F_GETFL, 0)
	if err != nil {
		return wasip1.Fdstat{}, mapErrno(err)
	}
	return wasip1.Fdstat{Filetype: n.ftype, Flags: fdflagsFromSys(sys)}, wasip1.ErrnoSuccess
}

// FdFdstatSetFlags updates the descriptor flags without reopening.
func (n *INode) FdFdstatSetFlags(fdflags wasip1.Fdflags) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if _, err := unix.FcntlInt(uintptr(n.Fd()), unix.F_SETFL, fdflagsToSys(fdflags)); err != nil {
		return mapErrno(err)
	}
	n.invalidate()
	return wasip1.ErrnoSuccess
}

// FdFilestatGet reports the cached status snapshot, fetching it on first
// use.
func (n *INode) FdFilestatGet() (wasip1.Filestat, wasip1.Errno) {
	fs, errno := n.ensureStat()
	if errno != wasip1.ErrnoSuccess {
		return wasip1.Filestat{}, errno
	}
	return *fs, wasip1.ErrnoSuccess
}

// FdFilestatSetSize truncates or extends the file; extension zero-fills.
func (n *INode) FdFilestatSetSize(size wasip1.Filesize) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if size > math.MaxInt64 {
		return wasip1.ErrnoInval
	}
	if err := unix.Ftruncate(n.Fd(), int64(size)); err != nil {
		return mapErrno(err)
	}
	n.invalidate()
	return wasip1.ErrnoSuccess
}

// FdFilestatSetTimes updates the node's access and modification times.
// NOW flags resolve against the wall clock; unselected timestamps keep
// their current values.
func (n *INode) FdFilestatSetTimes(atim, mtim wasip1.Timestamp, flags wasip1.FstFlags) wasip1.Errno {
	if flags&wasip1.FstFlagsAtim != 0 && flags&wasip1.FstFlagsAtimNow != 0 {
		return wasip1.ErrnoInval
	}
	if flags&wasip1.FstFlagsMtim != 0 && flags&wasip1.FstFlagsMtimNow != 0 {
		return wasip1.ErrnoInval
	}
	n.invalidate()
	fs, errno := n.ensureStat()
	if errno != wasip1.ErrnoSuccess {
		return errno
	}
	now := wasip1.Timestamp(time.Now().UnixNano())
	at, mt := fs.Atim, fs.Mtim
	switch {
	case flags&wasip1.FstFlagsAtimNow != 0:
		at = now
	case flags&wasip1.FstFlagsAtim != 0:
		at = atim
	}
	switch {
	case flags&wasip1.FstFlagsMtimNow != 0:
		mt = now
	case flags&wasip1.FstFlagsMtim != 0:
		mt = mtim
	}
	tvs := []unix.Timeval{
		unix.NsecToTimeval(int64(at)),
		unix.NsecToTimeval(int64(mt)),
	}
	if err := unix.Futimes(n.Fd(), tvs); err != nil {
		return mapErrno(err)
	}
	n.invalidate()
	return wasip1.ErrnoSuccess
}

// FdSync flushes data and metadata to stable storage.
func (n *INode) FdSync() wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if err := unix.Fsync(n.Fd()); err != nil {
		return mapErrno(err)
	}
	return wasip1.ErrnoSuccess
}

// PathCreateDirectory creates a directory relative to the node.
func (n *INode) PathCreateDirectory(path string) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if !n.IsDirectory() {
		return wasip1.ErrnoNotdir
	}
	if err := unix.Mkdirat(n.Fd(), path, 0o755); err != nil {
		return mapErrno(err)
	}
	n.invalidate()
	return wasip1.ErrnoSuccess
}

// PathRemoveDirectory removes an empty directory relative to the node.
// A non-empty target fails with ErrnoNotempty and is left unchanged.
func (n *INode) PathRemoveDirectory(path string) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if !n.IsDirectory() {
		return wasip1.ErrnoNotdir
	}
	if err := unix.Unlinkat(n.Fd(), path, unix.AT_REMOVEDIR); err != nil {
		// Some kernels report a populated directory as EEXIST.
		if err == unix.EEXIST {
			return wasip1.ErrnoNotempty
		}
		return mapErrno(err)
	}
	n.invalidate()
	return wasip1.ErrnoSuccess
}

// PathUnlinkFile unlinks a non-directory relative to the node. A
// directory target fails with ErrnoIsdir.
func (n *INode) PathUnlinkFile(path string) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if !n.IsDirectory() {
		return wasip1.ErrnoNotdir
	}
	if err := unix.Unlinkat(n.Fd(), path, 0); err != nil {
		// BSD kernels report EPERM for unlink on a directory.
		if err == unix.EPERM {
			var st unix.Stat_t
			if unix.Fstatat(n.Fd(), path, &st, unix.AT_SYMLINK_NOFOLLOW) == nil &&
				st.Mode&unix.S_IFMT == unix.S_IFDIR {
				return wasip1.ErrnoIsdir
			}
		}
		return mapErrno(err)
	}
	n.invalidate()
	return wasip1.ErrnoSuccess
}

// PathSymlink creates a symbolic link at newPath (relative to the node)
// pointing at oldPath.
func (n *INode) PathSymlink(oldPath, newPath string) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if !n.IsDirectory() {
		return wasip1.ErrnoNotdir
	}
	if err := unix.Symlinkat(oldPath, n.Fd(), newPath); err != nil {
		return mapErrno(err)
	}
	n.invalidate()
	return wasip1.ErrnoSuccess
}

// PathReadlink reads the target of a symbolic link into buf and returns
// the number of bytes written.
func (n *INode) PathReadlink(path string, buf []byte) (uint32, wasip1.Errno) {
	if !n.Ok() {
		return 0, wasip1.ErrnoBadf
	}
	if !n.IsDirectory() {
		return 0, wasip1.ErrnoNotdir
	}
	nread, err := unix.Readlinkat(n.Fd(), path, buf)
	if err != nil {
		return 0, mapErrno(err)
	}
	return uint32(nread), wasip1.ErrnoSuccess
}

// PathLink creates a hard link. Both nodes must be directory-typed; the
// link source is resolved relative to n and the new name relative to
// newNode.
func (n *INode) PathLink(oldPath string, newNode *INode, newPath string, lookup wasip1.LookupFlags) wasip1.Errno {
	if !n.Ok() || newNode == nil || !newNode.Ok() {
		return wasip1.ErrnoBadf
	}
	if !n.IsDirectory() || !newNode.IsDirectory() {
		return wasip1.ErrnoNotdir
	}
	var flags int
	if lookup&wasip1.LookupSymlinkFollow != 0 {
		flags = unix.AT_SYMLINK_FOLLOW
	}
	if err := unix.Linkat(n.Fd(), oldPath, newNode.Fd(), newPath, flags); err != nil {
		return mapErrno(err)
	}
	n.invalidate()
	newNode.invalidate()
	return wasip1.ErrnoSuccess
}

// PathRename moves oldPath (relative to n) to newPath (relative to
// newNode). Both nodes must be directory-typed.
func (n *INode) PathRename(oldPath string, newNode *INode, newPath string) wasip1.Errno {
	if !n.Ok() || newNode == nil || !newNode.Ok() {
		return wasip1.ErrnoBadf
	}
	if !n.IsDirectory() || !newNode.IsDirectory() {
		return wasip1.ErrnoNotdir
	}
	if err := unix.Renameat(n.Fd(), oldPath, newNode.Fd(), newPath); err != nil {
		return mapErrno(err)
	}
	n.invalidate()
	newNode.invalidate()
	return wasip1.ErrnoSuccess
}

// PathFilestatGet reports the status of a path relative to the node.
func (n *INode) PathFilestatGet(path string, lookup wasip1.LookupFlags) (wasip1.Filestat, wasip1.Errno) {
	if !n.Ok() {
		return wasip1.Filestat{}, wasip1.ErrnoBadf
	}
	if !n.IsDirectory() {
		return wasip1.Filestat{}, wasip1.ErrnoNotdir
	}
	flags := unix.AT_SYMLINK_NOFOLLOW
	if lookup&wasip1.LookupSymlinkFollow != 0 {
		flags = 0
	}
	var st unix.Stat_t
	if err := unix.Fstatat(n.Fd(), path, &st, flags); err != nil {
		return wasip1.Filestat{}, mapErrno(err)
	}
	return fromUnixStat(&st), wasip1.ErrnoSuccess
}

// PathFilestatSetTimes updates the timestamps of a path relative to the
// node.
func (n *INode) PathFilestatSetTimes(path string, lookup wasip1.LookupFlags, atim, mtim wasip1.Timestamp, flags wasip1.FstFlags) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if !n.IsDirectory() {
		return wasip1.ErrnoNotdir
	}
	if flags&wasip1.FstFlagsAtim != 0 && flags&wasip1.FstFlagsAtimNow != 0 {
		return wasip1.ErrnoInval
	}
	if flags&wasip1.FstFlagsMtim != 0 && flags&wasip1.FstFlagsMtimNow != 0 {
		return wasip1.ErrnoInval
	}
	ts := []unix.Timespec{
		timespecFor(atim, flags&wasip1.FstFlagsAtim != 0, flags&wasip1.FstFlagsAtimNow != 0),
		timespecFor(mtim, flags&wasip1.FstFlagsMtim != 0, flags&wasip1.FstFlagsMtimNow != 0),
	}
	atFlags := unix.AT_SYMLINK_NOFOLLOW
	if lookup&wasip1.LookupSymlinkFollow != 0 {
		atFlags = 0
	}
	if err := unix.UtimesNanoAt(n.Fd(), path, ts, atFlags); err != nil {
		return mapErrno(err)
	}
	n.invalidate()
	return wasip1.ErrnoSuccess
}

func timespecFor(t wasip1.Timestamp, set, now bool) unix.Timespec {
	switch {
	case now:
		return unix.Timespec{Nsec: utimeNow}
	case set:
		return unix.NsecToTimespec(int64(t))
	default:
		return unix.Timespec{Nsec: utimeOmit}
	}
}

// SockRecv receives into the buffers in order. The returned flags report
// datagram truncation.
func (n *INode) SockRecv(bufs [][]byte, riflags wasip1.Riflags) (wasip1.Filesize, wasip1.Roflags, wasip1.Errno) {
	if !n.Ok() {
		return 0, 0, wasip1.ErrnoBadf
	}
	if !n.isSocket() {
		return 0, 0, wasip1.ErrnoNotsup
	}
	var sysFlags int
	if riflags&wasip1.RiflagsRecvPeek != 0 {
		sysFlags |= unix.MSG_PEEK
	}
	if riflags&wasip1.RiflagsRecvWaitall != 0 {
		sysFlags |= unix.MSG_WAITALL
	}
	nread, _, recvFlags, _, err := unix.RecvmsgBuffers(n.Fd(), bufs, nil, sysFlags)
	if err != nil {
		return 0, 0, mapErrno(err)
	}
	var roflags wasip1.Roflags
	if recvFlags&unix.MSG_TRUNC != 0 {
		roflags |= wasip1.RoflagsRecvDataTruncated
	}
	return wasip1.Filesize(nread), roflags, wasip1.ErrnoSuccess
}

// SockSend sends the buffers in order and reports the bytes actually
// queued, which may be fewer than offered.
func (n *INode) SockSend(bufs [][]byte) (wasip1.Filesize, wasip1.Errno) {
	if !n.Ok() {
		return 0, wasip1.ErrnoBadf
	}
	if !n.isSocket() {
		return 0, wasip1.ErrnoNotsup
	}
	nwritten, err := unix.SendmsgBuffers(n.Fd(), bufs, nil, nil, 0)
	if err != nil {
		return 0, mapErrno(err)
	}
	return wasip1.Filesize(nwritten), wasip1.ErrnoSuccess
}

// SockShutdown closes the selected channels of a socket node.
func (n *INode) SockShutdown(how wasip1.SdFlags) wasip1.Errno {
	if !n.Ok() {
		return wasip1.ErrnoBadf
	}
	if !n.isSocket() {
		return wasip1.ErrnoNotsup
	}
	var sysHow int
	switch how & (wasip1.SdFlagsRd | wasip1.SdFlagsWr) {
	case wasip1.SdFlagsRd:
		sysHow = unix.SHUT_RD
	case wasip1.SdFlagsWr:
		sysHow = unix.SHUT_WR
	case wasip1.SdFlagsRd | wasip1.SdFlagsWr:
		sysHow = unix.SHUT_RDWR
	default:
		return wasip1.ErrnoInval
	}
	if err := unix.Shutdown(n.Fd(), sysHow); err != nil {
		return mapErrno(err)
	}
	return wasip1.ErrnoSuccess
}

func ftypeFromMode(mode uint32) wasip1.Filetype {
	switch mode & unix.S_IFMT {
	case unix.S_IFBLK:
		return wasip1.FiletypeBlockDevice
	case unix.S_IFCHR:
		return wasip1.FiletypeCharacterDevice
	case unix.S_IFDIR:
		return wasip1.FiletypeDirectory
	case unix.S_IFREG:
		return wasip1.FiletypeRegularFile
	case unix.S_IFSOCK:
		return wasip1.FiletypeSocketStream
	case unix.S_IFLNK:
		return wasip1.FiletypeSymbolicLink
	default:
		return wasip1.FiletypeUnknown
	}
}
