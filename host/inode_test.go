//go:build unix

package host

import (
	"bytes"
	"math"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/wippyai/wasi-host/wasip1"
)

func createFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	n, errno := Open(path, wasip1.OflagsCreat|wasip1.OflagsTrunc, 0, wasip1.AccessRead|wasip1.AccessWrite)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("create %s: %v", path, errno)
	}
	defer n.Close()
	if len(content) > 0 {
		if _, errno := n.FdWrite([][]byte{content}); errno != wasip1.ErrnoSuccess {
			t.Fatalf("write %s: %v", path, errno)
		}
	}
	return path
}

func openDir(t *testing.T, path string) *INode {
	t.Helper()
	n, errno := Open(path, wasip1.OflagsDirectory, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open dir %s: %v", path, errno)
	}
	return n
}

func TestOpenMissingFile(t *testing.T) {
	_, errno := Open(filepath.Join(t.TempDir(), "absent"), 0, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoNoent {
		t.Fatalf("errno = %v, want noent", errno)
	}
}

func TestOpenExclusiveExisting(t *testing.T) {
	path := createFile(t, t.TempDir(), "f", nil)
	_, errno := Open(path, wasip1.OflagsCreat|wasip1.OflagsExcl, 0, wasip1.AccessWrite)
	if errno != wasip1.ErrnoExist {
		t.Fatalf("errno = %v, want exist", errno)
	}
}

func TestOpenDirectoryFlagOnFile(t *testing.T) {
	path := createFile(t, t.TempDir(), "f", nil)
	_, errno := Open(path, wasip1.OflagsDirectory, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoNotdir {
		t.Fatalf("errno = %v, want notdir", errno)
	}
}

func TestOpenDescriptorBound(t *testing.T) {
	n, errno := Open(createFile(t, t.TempDir(), "f", nil), 0, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	defer n.Close()
	if fd := n.Fd(); fd < 0 || fd > math.MaxInt32 {
		t.Errorf("descriptor %d out of [0, 2^31)", fd)
	}
	if n.Filetype() != wasip1.FiletypeRegularFile {
		t.Errorf("filetype = %v, want regular-file", n.Filetype())
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, segs := range [][][]byte{
		{[]byte{1}},
		{[]byte("hello"), []byte(" "), []byte("world")},
		{bytes.Repeat([]byte{7}, 1024), bytes.Repeat([]byte{9}, 512)},
	} {
		n, errno := Open(filepath.Join(dir, "rt"), wasip1.OflagsCreat|wasip1.OflagsTrunc, 0, wasip1.AccessRead|wasip1.AccessWrite)
		if errno != wasip1.ErrnoSuccess {
			t.Fatalf("open: %v", errno)
		}
		var want []byte
		for _, s := range segs {
			want = append(want, s...)
		}
		nwritten, errno := n.FdWrite(segs)
		if errno != wasip1.ErrnoSuccess || nwritten != wasip1.Filesize(len(want)) {
			t.Fatalf("FdWrite = (%d, %v), want (%d, success)", nwritten, errno, len(want))
		}
		if _, errno := n.FdSeek(0, wasip1.WhenceSet); errno != wasip1.ErrnoSuccess {
			t.Fatalf("seek: %v", errno)
		}
		got := make([]byte, len(want))
		half := len(got) / 2
		nread, errno := n.FdRead([][]byte{got[:half], got[half:]})
		if errno != wasip1.ErrnoSuccess || nread != wasip1.Filesize(len(want)) {
			t.Fatalf("FdRead = (%d, %v), want (%d, success)", nread, errno, len(want))
		}
		if !bytes.Equal(got, want) {
			t.Errorf("round trip mismatch: got %q want %q", got, want)
		}
		n.Close()
	}
}

func TestPreadPwriteLeaveCursor(t *testing.T) {
	n, errno := Open(filepath.Join(t.TempDir(), "p"), wasip1.OflagsCreat, 0, wasip1.AccessRead|wasip1.AccessWrite)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	defer n.Close()
	if _, errno := n.FdPwrite([][]byte{{1, 2}, {3}}, 4); errno != wasip1.ErrnoSuccess {
		t.Fatalf("pwrite: %v", errno)
	}
	pos, errno := n.FdTell()
	if errno != wasip1.ErrnoSuccess || pos != 0 {
		t.Fatalf("cursor moved by pwrite: (%d, %v)", pos, errno)
	}
	buf := make([]byte, 3)
	nread, errno := n.FdPread([][]byte{buf}, 4)
	if errno != wasip1.ErrnoSuccess || nread != 3 {
		t.Fatalf("pread = (%d, %v)", nread, errno)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3}) {
		t.Errorf("pread got %v", buf)
	}
}

func TestSeekEndMatchesFilesize(t *testing.T) {
	n, errno := Open(createFile(t, t.TempDir(), "s", []byte("0123456789")), 0, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	defer n.Close()
	if _, errno := n.FdSeek(0, wasip1.WhenceEnd); errno != wasip1.ErrnoSuccess {
		t.Fatalf("seek end: %v", errno)
	}
	pos, errno := n.FdTell()
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("tell: %v", errno)
	}
	size, errno := n.Filesize()
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("filesize: %v", errno)
	}
	if pos != size || size != 10 {
		t.Errorf("tell = %d, filesize = %d, want both 10", pos, size)
	}
}

func TestSeekInvalid(t *testing.T) {
	n, errno := Open(createFile(t, t.TempDir(), "s", nil), 0, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	defer n.Close()
	if _, errno := n.FdSeek(0, wasip1.Whence(9)); errno != wasip1.ErrnoInval {
		t.Errorf("bad whence errno = %v, want inval", errno)
	}
	if _, errno := n.FdSeek(-1, wasip1.WhenceSet); errno != wasip1.ErrnoInval {
		t.Errorf("negative offset errno = %v, want inval", errno)
	}
}

func TestPwriteFilestatUnlinkScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x")
	n, errno := Open(path, wasip1.OflagsCreat|wasip1.OflagsTrunc, 0, wasip1.AccessRead|wasip1.AccessWrite)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	if _, errno := n.FdPwrite([][]byte{{1, 2, 3}}, 0); errno != wasip1.ErrnoSuccess {
		t.Fatalf("pwrite: %v", errno)
	}
	fs, errno := n.FdFilestatGet()
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("filestat: %v", errno)
	}
	if fs.Size != 3 {
		t.Fatalf("filesize = %d, want 3", fs.Size)
	}
	n.Close()

	d := openDir(t, dir)
	defer d.Close()
	if errno := d.PathUnlinkFile("x"); errno != wasip1.ErrnoSuccess {
		t.Fatalf("unlink: %v", errno)
	}
	if _, errno := Open(path, 0, 0, wasip1.AccessRead); errno != wasip1.ErrnoNoent {
		t.Fatalf("reopen errno = %v, want noent", errno)
	}
}

func TestPathOpenRelative(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "inner", []byte("abc"))
	d := openDir(t, dir)
	defer d.Close()

	n, errno := d.PathOpen("inner", wasip1.LookupSymlinkFollow, 0, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("path open: %v", errno)
	}
	defer n.Close()
	size, errno := n.Filesize()
	if errno != wasip1.ErrnoSuccess || size != 3 {
		t.Errorf("filesize = (%d, %v), want (3, success)", size, errno)
	}

	if _, errno := n.PathOpen("x", 0, 0, 0, wasip1.AccessRead); errno != wasip1.ErrnoNotdir {
		t.Errorf("path open on file errno = %v, want notdir", errno)
	}
}

func TestPathCreateRemoveDirectory(t *testing.T) {
	dir := t.TempDir()
	d := openDir(t, dir)
	defer d.Close()

	if errno := d.PathCreateDirectory("sub"); errno != wasip1.ErrnoSuccess {
		t.Fatalf("create: %v", errno)
	}
	createFile(t, filepath.Join(dir, "sub"), "keep", []byte("k"))

	if errno := d.PathRemoveDirectory("sub"); errno != wasip1.ErrnoNotempty {
		t.Fatalf("remove non-empty errno = %v, want notempty", errno)
	}
	// contents must be unchanged after the failed removal
	n, errno := Open(filepath.Join(dir, "sub", "keep"), 0, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("contents disturbed by failed removal: %v", errno)
	}
	n.Close()

	sub := openDir(t, filepath.Join(dir, "sub"))
	if errno := sub.PathUnlinkFile("keep"); errno != wasip1.ErrnoSuccess {
		t.Fatalf("unlink: %v", errno)
	}
	sub.Close()
	if errno := d.PathRemoveDirectory("sub"); errno != wasip1.ErrnoSuccess {
		t.Fatalf("remove empty: %v", errno)
	}
}

func TestPathUnlinkDirectory(t *testing.T) {
	dir := t.TempDir()
	d := openDir(t, dir)
	defer d.Close()
	if errno := d.PathCreateDirectory("sub"); errno != wasip1.ErrnoSuccess {
		t.Fatalf("create: %v", errno)
	}
	if errno := d.PathUnlinkFile("sub"); errno != wasip1.ErrnoIsdir {
		t.Errorf("unlink dir errno = %v, want isdir", errno)
	}
}

func TestPathSymlinkReadlink(t *testing.T) {
	dir := t.TempDir()
	d := openDir(t, dir)
	defer d.Close()
	if errno := d.PathSymlink("target", "link"); errno != wasip1.ErrnoSuccess {
		t.Fatalf("symlink: %v", errno)
	}
	buf := make([]byte, 64)
	nread, errno := d.PathReadlink("link", buf)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("readlink: %v", errno)
	}
	if string(buf[:nread]) != "target" {
		t.Errorf("readlink = %q, want %q", buf[:nread], "target")
	}
	fs, errno := d.PathFilestatGet("link", 0)
	if errno != wasip1.ErrnoSuccess || fs.Filetype != wasip1.FiletypeSymbolicLink {
		t.Errorf("lstat = (%v, %v), want symbolic-link", fs.Filetype, errno)
	}
}

func TestPathRenameAcrossNodes(t *testing.T) {
	srcDir, dstDir := t.TempDir(), t.TempDir()
	createFile(t, srcDir, "f", []byte("move me"))
	src := openDir(t, srcDir)
	defer src.Close()
	dst := openDir(t, dstDir)
	defer dst.Close()

	if errno := src.PathRename("f", dst, "g"); errno != wasip1.ErrnoSuccess {
		t.Fatalf("rename: %v", errno)
	}
	if _, errno := Open(filepath.Join(srcDir, "f"), 0, 0, wasip1.AccessRead); errno != wasip1.ErrnoNoent {
		t.Errorf("source still present: %v", errno)
	}
	n, errno := Open(filepath.Join(dstDir, "g"), 0, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("destination missing: %v", errno)
	}
	n.Close()
}

func TestPathLink(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "orig", []byte("x"))
	d := openDir(t, dir)
	defer d.Close()
	if errno := d.PathLink("orig", d, "hard", 0); errno != wasip1.ErrnoSuccess {
		t.Fatalf("link: %v", errno)
	}
	fs, errno := d.PathFilestatGet("hard", wasip1.LookupSymlinkFollow)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("stat link: %v", errno)
	}
	if fs.Nlink < 2 {
		t.Errorf("nlink = %d, want >= 2", fs.Nlink)
	}
}

func TestFdstatFlags(t *testing.T) {
	n, errno := Open(createFile(t, t.TempDir(), "f", nil), 0, wasip1.FdflagsAppend, wasip1.AccessWrite)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	defer n.Close()
	st, errno := n.FdFdstatGet()
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("fdstat: %v", errno)
	}
	if st.Flags&wasip1.FdflagsAppend == 0 {
		t.Error("append flag not reported")
	}
	if st.Filetype != wasip1.FiletypeRegularFile {
		t.Errorf("filetype = %v", st.Filetype)
	}

	if errno := n.FdFdstatSetFlags(wasip1.FdflagsNonblock); errno != wasip1.ErrnoSuccess {
		t.Fatalf("set flags: %v", errno)
	}
	st, errno = n.FdFdstatGet()
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("fdstat: %v", errno)
	}
	if st.Flags&wasip1.FdflagsNonblock == 0 {
		t.Error("nonblock flag not reported after set")
	}
}

func TestFdstatSyncFlagsReported(t *testing.T) {
	dir := t.TempDir()

	n, errno := Open(createFile(t, dir, "d", nil), 0, wasip1.FdflagsDsync, wasip1.AccessWrite)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open dsync: %v", errno)
	}
	st, errno := n.FdFdstatGet()
	n.Close()
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("fdstat: %v", errno)
	}
	if st.Flags&wasip1.FdflagsDsync == 0 {
		t.Error("dsync flag not reported")
	}

	n, errno = Open(createFile(t, dir, "s", nil), 0, wasip1.FdflagsSync, wasip1.AccessWrite)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open sync: %v", errno)
	}
	st, errno = n.FdFdstatGet()
	n.Close()
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("fdstat: %v", errno)
	}
	if st.Flags&wasip1.FdflagsSync == 0 {
		t.Error("sync flag not reported")
	}
}

func TestFilestatSetSizeInvalidatesSnapshot(t *testing.T) {
	n, errno := Open(createFile(t, t.TempDir(), "f", []byte("abcdef")), 0, 0, wasip1.AccessRead|wasip1.AccessWrite)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	defer n.Close()
	if size, _ := n.Filesize(); size != 6 {
		t.Fatalf("initial size = %d", size)
	}
	if errno := n.FdFilestatSetSize(2); errno != wasip1.ErrnoSuccess {
		t.Fatalf("set size: %v", errno)
	}
	if size, _ := n.Filesize(); size != 2 {
		t.Errorf("size after truncate = %d, want 2 (stale snapshot?)", size)
	}
}

func TestFilestatSetTimes(t *testing.T) {
	n, errno := Open(createFile(t, t.TempDir(), "f", nil), 0, 0, wasip1.AccessRead|wasip1.AccessWrite)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	defer n.Close()

	const mtim = 1_500_000_000_000_000_000 // 2017-07-14, well in the past
	if errno := n.FdFilestatSetTimes(0, mtim, wasip1.FstFlagsMtim); errno != wasip1.ErrnoSuccess {
		t.Fatalf("set times: %v", errno)
	}
	fs, errno := n.FdFilestatGet()
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("filestat: %v", errno)
	}
	// applied at microsecond granularity; second-level agreement is enough
	if fs.Mtim/1e9 != mtim/1e9 {
		t.Errorf("mtim = %d, want %d", fs.Mtim, wasip1.Timestamp(mtim))
	}

	if errno := n.FdFilestatSetTimes(1, 0, wasip1.FstFlagsAtim|wasip1.FstFlagsAtimNow); errno != wasip1.ErrnoInval {
		t.Errorf("conflicting flags errno = %v, want inval", errno)
	}
}

func TestAdviseAllocate(t *testing.T) {
	n, errno := Open(createFile(t, t.TempDir(), "f", nil), 0, 0, wasip1.AccessRead|wasip1.AccessWrite)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	defer n.Close()
	if errno := n.FdAdvise(0, 4096, wasip1.AdviceSequential); errno != wasip1.ErrnoSuccess {
		t.Errorf("advise: %v", errno)
	}
	if errno := n.FdAdvise(0, 0, wasip1.Advice(42)); errno != wasip1.ErrnoInval {
		t.Errorf("bad advice errno = %v, want inval", errno)
	}
	if errno := n.FdAllocate(0, 8192); errno != wasip1.ErrnoSuccess {
		t.Errorf("allocate: %v", errno)
	}
	if runtime.GOOS == "linux" {
		if size, _ := n.Filesize(); size < 8192 {
			t.Errorf("size after allocate = %d, want >= 8192", size)
		}
	}
}

func TestSyncFamily(t *testing.T) {
	n, errno := Open(createFile(t, t.TempDir(), "f", []byte("data")), 0, 0, wasip1.AccessRead|wasip1.AccessWrite)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	defer n.Close()
	if errno := n.FdDatasync(); errno != wasip1.ErrnoSuccess {
		t.Errorf("datasync: %v", errno)
	}
	if errno := n.FdSync(); errno != wasip1.ErrnoSuccess {
		t.Errorf("sync: %v", errno)
	}
}

func TestCanBrowse(t *testing.T) {
	d := openDir(t, t.TempDir())
	defer d.Close()
	if !d.CanBrowse() {
		t.Error("own temp dir should be browsable")
	}
	f, errno := Open(createFile(t, t.TempDir(), "f", nil), 0, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	defer f.Close()
	if f.CanBrowse() {
		t.Error("regular file must not be browsable")
	}
}

func TestClosedNodeRejected(t *testing.T) {
	n, errno := Open(createFile(t, t.TempDir(), "f", nil), 0, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		t.Fatalf("open: %v", errno)
	}
	n.Close()
	n.Close() // release happens exactly once; double close is harmless
	if _, errno := n.FdRead([][]byte{make([]byte, 1)}); errno != wasip1.ErrnoBadf {
		t.Errorf("read on closed node errno = %v, want badf", errno)
	}
	if _, errno := n.FdTell(); errno != wasip1.ErrnoBadf {
		t.Errorf("tell on closed node errno = %v, want badf", errno)
	}
}

func TestStdioNodes(t *testing.T) {
	in, out, errn := Stdin(), Stdout(), Stderr()
	if !in.Ok() || !out.Ok() || !errn.Ok() {
		t.Fatal("stdio nodes must wrap live descriptors")
	}
	if in.Fd() != 0 || out.Fd() != 1 || errn.Fd() != 2 {
		t.Errorf("stdio fds = %d/%d/%d", in.Fd(), out.Fd(), errn.Fd())
	}
	out.Close()
	if !fdAlive(1) {
		t.Fatal("closing the stdout node closed fd 1")
	}
}
