package wasip1

// Errno is the portable error code returned by every host operation.
// ErrnoSuccess (zero) reports success; any other value is the single
// error outcome of the call. The set is closed: hosts map their native
// error domain onto these values and nothing else.
type Errno uint16

const (
	ErrnoSuccess Errno = iota
	Errno2big
	ErrnoAcces
	ErrnoAddrinuse
	ErrnoAddrnotavail
	ErrnoAfnosupport
	ErrnoAgain
	ErrnoAlready
	ErrnoBadf
	ErrnoBadmsg
	ErrnoBusy
	ErrnoCanceled
	ErrnoChild
	ErrnoConnaborted
	ErrnoConnrefused
	ErrnoConnreset
	ErrnoDeadlk
	ErrnoDestaddrreq
	ErrnoDom
	ErrnoDquot
	ErrnoExist
	ErrnoFault
	ErrnoFbig
	ErrnoHostunreach
	ErrnoIdrm
	ErrnoIlseq
	ErrnoInprogress
	ErrnoIntr
	ErrnoInval
	ErrnoIo
	ErrnoIsconn
	ErrnoIsdir
	ErrnoLoop
	ErrnoMfile
	ErrnoMlink
	ErrnoMsgsize
	ErrnoMultihop
	ErrnoNametoolong
	ErrnoNetdown
	ErrnoNetreset
	ErrnoNetunreach
	ErrnoNfile
	ErrnoNobufs
	ErrnoNodev
	ErrnoNoent
	ErrnoNoexec
	ErrnoNolck
	ErrnoNolink
	ErrnoNomem
	ErrnoNomsg
	ErrnoNoprotoopt
	ErrnoNospc
	ErrnoNosys
	ErrnoNotconn
	ErrnoNotdir
	ErrnoNotempty
	ErrnoNotrecoverable
	ErrnoNotsock
	ErrnoNotsup
	ErrnoNotty
	ErrnoNxio
	ErrnoOverflow
	ErrnoOwnerdead
	ErrnoPerm
	ErrnoPipe
	ErrnoProto
	ErrnoProtonosupport
	ErrnoPrototype
	ErrnoRange
	ErrnoRofs
	ErrnoSpipe
	ErrnoSrch
	ErrnoStale
	ErrnoTimedout
	ErrnoTxtbsy
	ErrnoXdev
	ErrnoNotcapable
)

var errnoNames = [...]string{
	ErrnoSuccess:        "success",
	Errno2big:           "argument list too long",
	ErrnoAcces:          "permission denied",
	ErrnoAddrinuse:      "address in use",
	ErrnoAddrnotavail:   "address not available",
	ErrnoAfnosupport:    "address family not supported",
	ErrnoAgain:          "resource unavailable, try again",
	ErrnoAlready:        "connection already in progress",
	ErrnoBadf:           "bad file descriptor",
	ErrnoBadmsg:         "bad message",
	ErrnoBusy:           "device or resource busy",
	ErrnoCanceled:       "operation canceled",
	ErrnoChild:          "no child processes",
	ErrnoConnaborted:    "connection aborted",
	ErrnoConnrefused:    "connection refused",
	ErrnoConnreset:      "connection reset",
	ErrnoDeadlk:         "resource deadlock would occur",
	ErrnoDestaddrreq:    "destination address required",
	ErrnoDom:            "argument out of domain",
	ErrnoDquot:          "quota exceeded",
	ErrnoExist:          "file exists",
	ErrnoFault:          "bad address",
	ErrnoFbig:           "file too large",
	ErrnoHostunreach:    "host is unreachable",
	ErrnoIdrm:           "identifier removed",
	ErrnoIlseq:          "illegal byte sequence",
	ErrnoInprogress:     "operation in progress",
	ErrnoIntr:           "interrupted function",
	ErrnoInval:          "invalid argument",
	ErrnoIo:             "I/O error",
	ErrnoIsconn:         "socket is connected",
	ErrnoIsdir:          "is a directory",
	ErrnoLoop:           "too many levels of symbolic links",
	ErrnoMfile:          "file descriptor value too large",
	ErrnoMlink:          "too many links",
	ErrnoMsgsize:        "message too large",
	ErrnoMultihop:       "multihop attempted",
	ErrnoNametoolong:    "filename too long",
	ErrnoNetdown:        "network is down",
	ErrnoNetreset:       "connection aborted by network",
	ErrnoNetunreach:     "network unreachable",
	ErrnoNfile:          "too many files open in system",
	ErrnoNobufs:         "no buffer space available",
	ErrnoNodev:          "no such device",
	ErrnoNoent:          "no such file or directory",
	ErrnoNoexec:         "executable file format error",
	ErrnoNolck:          "no locks available",
	ErrnoNolink:         "link has been severed",
	ErrnoNomem:          "not enough space",
	ErrnoNomsg:          "no message of the desired type",
	ErrnoNoprotoopt:     "protocol not available",
	ErrnoNospc:          "no space left on device",
	ErrnoNosys:          "function not supported",
	ErrnoNotconn:        "socket is not connected",
	ErrnoNotdir:         "not a directory",
	ErrnoNotempty:       "directory not empty",
	ErrnoNotrecoverable: "state not recoverable",
	ErrnoNotsock:        "not a socket",
	ErrnoNotsup:         "not supported",
	ErrnoNotty:          "inappropriate I/O control operation",
	ErrnoNxio:           "no such device or address",
	ErrnoOverflow:       "value too large to be stored in data type",
	ErrnoOwnerdead:      "previous owner died",
	ErrnoPerm:           "operation not permitted",
	ErrnoPipe:           "broken pipe",
	ErrnoProto:          "protocol error",
	ErrnoProtonosupport: "protocol not supported",
	ErrnoPrototype:      "protocol wrong type for socket",
	ErrnoRange:          "result too large",
	ErrnoRofs:           "read-only file system",
	ErrnoSpipe:          "invalid seek",
	ErrnoSrch:           "no such process",
	ErrnoStale:          "stale file handle",
	ErrnoTimedout:       "connection timed out",
	ErrnoTxtbsy:         "text file busy",
	ErrnoXdev:           "cross-device link",
	ErrnoNotcapable:     "capabilities insufficient",
}

// String returns the POSIX-style message for the errno.
func (e Errno) String() string {
	if int(e) < len(errnoNames) {
		return errnoNames[e]
	}
	return "unknown error"
}

// Error implements the error interface so an Errno can be returned through
// error-typed plumbing in callers that want it. ErrnoSuccess should never
// be treated as an error value.
func (e Errno) Error() string {
	return e.String()
}
