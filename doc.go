// Package wasihost provides the host-side OS binding layer for WASI
// preview1 filesystem, socket, and polling operations.
//
// # Architecture Overview
//
// The module is organized into a small set of packages:
//
//	wasihost/            Root package, documentation only
//	├── wasip1/          Portable ABI vocabulary: errnos, file types,
//	│                    flags, dirent layout, poll events
//	├── host/            POSIX bindings: descriptor ownership, the INode
//	│                    operation surface, and the readiness Poller
//	└── cmd/fsprobe/     CLI for exercising the bindings against a live
//	                     filesystem
//
// # Quick Start
//
// Open a file and read through the node:
//
//	n, errno := host.Open("/etc/hosts", 0, 0, wasip1.AccessRead)
//	if errno != wasip1.ErrnoSuccess {
//	    log.Fatal(errno)
//	}
//	defer n.Close()
//
//	buf := make([]byte, 4096)
//	nread, errno := n.FdRead([][]byte{buf})
//
// Wait for readiness with a deadline:
//
//	p, _ := host.NewPoller(2)
//	defer p.Close()
//	p.Read(n, 1)
//	p.Clock(wasip1.ClockMonotonic, wasip1.Timestamp(5*time.Second), 0, 0, 2)
//	p.Wait(func(ev wasip1.Event) { fmt.Println(ev.Userdata, ev.Type) })
//
// # Error Model
//
// Every operation reports a wasip1.Errno instead of a Go error. The code
// set is closed: native errnos are translated onto it and unmappable
// failures collapse to ErrnoIo. ErrnoSuccess is zero; any other value is
// the single error outcome of the call.
//
// # Thread Safety
//
// INode and Poller are single-owner values. Neither is safe for
// concurrent use; callers that share them across goroutines must
// synchronize externally.
package wasihost
