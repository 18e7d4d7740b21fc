package host

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/wippyai/wasi-host/wasip1"
)

func TestTimerResetBeforeExpiry(t *testing.T) {
	var tm TimerHolder
	if errno := tm.arm(wasip1.ClockMonotonic, wasip1.Timestamp(time.Hour), false); errno != wasip1.ErrnoSuccess {
		t.Fatalf("arm: %v", errno)
	}
	if !tm.Ok() {
		t.Fatal("armed timer not owned")
	}
	tm.Reset()
	if tm.Ok() {
		t.Error("holder still owns after Reset")
	}
	tm.Reset() // second Reset is a no-op
}

func TestTimerResetAfterExpiryLeavesNewDescriptorsAlone(t *testing.T) {
	var tm TimerHolder
	if errno := tm.arm(wasip1.ClockMonotonic, wasip1.Timestamp(time.Millisecond), false); errno != wasip1.ErrnoSuccess {
		t.Fatalf("arm: %v", errno)
	}
	// blocking read on the notification pipe waits out the expiry
	var b [1]byte
	if n, err := unix.Read(tm.watchFd(), b[:]); n != 1 || err != nil {
		t.Fatalf("expiry byte = (%d, %v)", n, err)
	}

	// The dispatched callback owns the write end; Reset must not close a
	// descriptor number the kernel may already have reissued.
	tm.Reset()
	fd := openTestFd(t)
	time.Sleep(20 * time.Millisecond) // give a late callback time to misfire
	if !fdAlive(fd) {
		t.Fatal("descriptor opened after Reset was closed underneath us")
	}
	_ = unix.Close(fd)
}
