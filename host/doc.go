// Package host is the operating-system binding layer of the WASI
// subsystem. It owns native descriptors and translates the abstract
// filesystem, directory, and socket operations of the interpreter's
// dispatch layer into real syscalls.
//
// # Core types
//
//   - INode: one open file, directory, or socket. Composes an FdHolder
//     (and, for directories, a DirHolder) and exposes the full operation
//     catalogue: FdRead/FdWrite and their positioned variants, seek and
//     tell, fdstat and filestat access, directory enumeration with cookie
//     resumption, the path* family anchored at directory nodes, and the
//     socket send/recv/shutdown trio.
//   - Poller: the unified readiness/timeout wait. Subscriptions reference
//     INodes (readable/writable) or clocks; Wait blocks the calling thread
//     on the native multiplexer and reports one outcome per ready
//     subscription through a callback.
//   - FdHolder, DirHolder, TimerHolder: scoped resources guaranteeing
//     exactly-once release of the descriptor, directory cursor, or kernel
//     timer they own.
//
// # Error contract
//
// Every operation returns a wasip1.Errno (alone or alongside its result).
// wasip1.ErrnoSuccess reports success; anything else is the single error
// outcome. Nothing is logged or swallowed on error paths; the dispatch
// layer decides what the guest observes.
//
// # Concurrency
//
// Instances are not internally synchronized. The owning layer must confine
// each INode or Poller to one goroutine or serialize access externally.
// Wait is the only blocking suspension point and has no cancellation
// primitive other than its own subscriptions; callers wanting a hard
// cutoff register a clock subscription as their timeout.
package host
