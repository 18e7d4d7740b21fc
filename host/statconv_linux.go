package host

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

// Special Nsec values for UtimesNanoAt, from include/linux/stat.h.
const (
	utimeNow  = (1 << 30) - 1
	utimeOmit = (1 << 30) - 2
)

func fromUnixStat(st *unix.Stat_t) wasip1.Filestat {
	return wasip1.Filestat{
		Dev:      wasip1.Device(st.Dev),
		Ino:      wasip1.Inode(st.Ino),
		Filetype: ftypeFromMode(uint32(st.Mode)),
		Nlink:    wasip1.Linkcount(st.Nlink),
		Size:     wasip1.Filesize(st.Size),
		Atim:     wasip1.Timestamp(st.Atim.Nano()),
		Mtim:     wasip1.Timestamp(st.Mtim.Nano()),
		Ctim:     wasip1.Timestamp(st.Ctim.Nano()),
	}
}
