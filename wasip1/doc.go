// Package wasip1 defines the numeric WASI preview1 vocabulary spoken by the
// host binding layer: the closed errno enumeration, file types, open and
// descriptor flags, clock identifiers, the packed directory-entry layout,
// and the subscription/event shapes used by the poller.
//
// The package is a leaf: it has no dependencies and performs no syscalls.
// All values match the wasi_snapshot_preview1 ABI so that the dispatch
// layer can copy them into guest memory unchanged.
package wasip1
