package wasip1

// Filesize is a file size or byte count.
type Filesize = uint64

// Filedelta is a relative offset for seeks.
type Filedelta = int64

// Timestamp is a count of nanoseconds.
type Timestamp = uint64

// Userdata is the caller-chosen opaque value attached to a subscription
// and echoed back in its event.
type Userdata = uint64

// Dircookie marks a position in a directory's enumeration order.
// Zero always means the start of the directory.
type Dircookie = uint64

// Inode is a file serial number.
type Inode = uint64

// Device is a device identifier.
type Device = uint64

// Linkcount is a hard-link count.
type Linkcount = uint64

// Filetype classifies an open resource. The variant of a node is fixed at
// creation time.
type Filetype uint8

const (
	FiletypeUnknown Filetype = iota
	FiletypeBlockDevice
	FiletypeCharacterDevice
	FiletypeDirectory
	FiletypeRegularFile
	FiletypeSocketDgram
	FiletypeSocketStream
	FiletypeSymbolicLink
)

func (t Filetype) String() string {
	switch t {
	case FiletypeBlockDevice:
		return "block-device"
	case FiletypeCharacterDevice:
		return "character-device"
	case FiletypeDirectory:
		return "directory"
	case FiletypeRegularFile:
		return "regular-file"
	case FiletypeSocketDgram:
		return "socket-dgram"
	case FiletypeSocketStream:
		return "socket-stream"
	case FiletypeSymbolicLink:
		return "symbolic-link"
	default:
		return "unknown"
	}
}

// Oflags control how a path is opened.
type Oflags uint16

const (
	OflagsCreat Oflags = 1 << iota
	OflagsDirectory
	OflagsExcl
	OflagsTrunc
)

// Fdflags are descriptor-level flags reported and set through fdstat.
type Fdflags uint16

const (
	FdflagsAppend Fdflags = 1 << iota
	FdflagsDsync
	FdflagsNonblock
	FdflagsRsync
	FdflagsSync
)

// LookupFlags control path resolution of the final component.
type LookupFlags uint32

const (
	// LookupSymlinkFollow expands the final symlink instead of operating
	// on the link itself.
	LookupSymlinkFollow LookupFlags = 1 << iota
)

// AccessFlags select the I/O direction requested for an open.
type AccessFlags uint8

const (
	AccessRead AccessFlags = 1 << iota
	AccessWrite
)

// Whence is the base of a seek.
type Whence uint8

const (
	WhenceSet Whence = iota
	WhenceCur
	WhenceEnd
)

// Advice is a file access pattern hint.
type Advice uint8

const (
	AdviceNormal Advice = iota
	AdviceSequential
	AdviceRandom
	AdviceWillneed
	AdviceDontneed
	AdviceNoreuse
)

// FstFlags select which timestamps a set-times call updates.
type FstFlags uint16

const (
	FstFlagsAtim FstFlags = 1 << iota
	FstFlagsAtimNow
	FstFlagsMtim
	FstFlagsMtimNow
)

// ClockID identifies a clock source.
type ClockID uint32

const (
	ClockRealtime ClockID = iota
	ClockMonotonic
	ClockProcessCputimeID
	ClockThreadCputimeID
)

// Fdstat reports descriptor-level attributes: the immutable file type and
// the current descriptor flags.
type Fdstat struct {
	Filetype Filetype
	Flags    Fdflags
}

// Filestat is the status snapshot of an open file or path.
type Filestat struct {
	Dev      Device
	Ino      Inode
	Filetype Filetype
	Nlink    Linkcount
	Size     Filesize
	Atim     Timestamp
	Mtim     Timestamp
	Ctim     Timestamp
}

// Riflags modify a socket receive.
type Riflags uint16

const (
	RiflagsRecvPeek Riflags = 1 << iota
	RiflagsRecvWaitall
)

// Roflags report conditions of a completed socket receive.
type Roflags uint16

const (
	RoflagsRecvDataTruncated Roflags = 1 << iota
)

// SdFlags select which channels of a socket to shut down.
type SdFlags uint8

const (
	SdFlagsRd SdFlags = 1 << iota
	SdFlagsWr
)
