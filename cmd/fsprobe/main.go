package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasi-host/host"
	"github.com/wippyai/wasi-host/wasip1"
)

func main() {
	var (
		path        = flag.String("path", "", "Path to probe")
		stat        = flag.Bool("stat", false, "Print file status and exit")
		list        = flag.Bool("list", false, "List directory entries and exit")
		watch       = flag.Bool("watch", false, "Wait until the path becomes readable")
		timeout     = flag.Duration("timeout", 5*time.Second, "Watch deadline")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive browser with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		host.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		start := *path
		if start == "" {
			start = "."
		}
		if err := runInteractive(start); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *path == "" {
		fmt.Fprintln(os.Stderr, "Usage: fsprobe -path <file> -stat")
		fmt.Fprintln(os.Stderr, "       fsprobe -path <dir> -list")
		fmt.Fprintln(os.Stderr, "       fsprobe -path <fifo> -watch [-timeout 5s]")
		fmt.Fprintln(os.Stderr, "       fsprobe [-path <dir>] -i  (interactive mode)")
		os.Exit(1)
	}

	var err error
	switch {
	case *stat:
		err = runStat(*path)
	case *list:
		err = runList(*path)
	case *watch:
		err = runWatch(*path, *timeout)
	default:
		err = runStat(*path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStat(path string) error {
	n, errno := host.Open(path, 0, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		return fmt.Errorf("open %s: %w", path, errno)
	}
	defer n.Close()

	st, errno := n.FdFilestatGet()
	if errno != wasip1.ErrnoSuccess {
		return fmt.Errorf("filestat %s: %w", path, errno)
	}

	fmt.Printf("Path: %s\n", path)
	fmt.Printf("Type: %v\n", st.Filetype)
	fmt.Printf("Size: %d\n", st.Size)
	fmt.Printf("Inode: %d (device %d)\n", st.Ino, st.Dev)
	fmt.Printf("Links: %d\n", st.Nlink)
	fmt.Printf("Accessed: %s\n", time.Unix(0, int64(st.Atim)).Format(time.RFC3339Nano))
	fmt.Printf("Modified: %s\n", time.Unix(0, int64(st.Mtim)).Format(time.RFC3339Nano))
	fmt.Printf("Changed:  %s\n", time.Unix(0, int64(st.Ctim)).Format(time.RFC3339Nano))
	return nil
}

func runList(path string) error {
	d, errno := host.Open(path, wasip1.OflagsDirectory, 0, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		return fmt.Errorf("open %s: %w", path, errno)
	}
	defer d.Close()

	entries, err := listEntries(d)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for _, e := range entries {
		fmt.Printf("%-20s %-16v inode %d\n", e.name, e.ftype, e.ino)
	}
	fmt.Printf("%d entries\n", len(entries))
	return nil
}

func runWatch(path string, timeout time.Duration) error {
	n, errno := host.Open(path, 0, wasip1.FdflagsNonblock, wasip1.AccessRead)
	if errno != wasip1.ErrnoSuccess {
		return fmt.Errorf("open %s: %w", path, errno)
	}
	defer n.Close()

	p, errno := host.NewPoller(2)
	if errno != wasip1.ErrnoSuccess {
		return fmt.Errorf("poller: %w", errno)
	}
	defer p.Close()

	const (
		dataReady = wasip1.Userdata(1)
		deadline  = wasip1.Userdata(2)
	)
	if errno := p.Read(n, dataReady); errno != wasip1.ErrnoSuccess {
		return fmt.Errorf("subscribe %s: %w", path, errno)
	}
	if errno := p.Clock(wasip1.ClockMonotonic, wasip1.Timestamp(timeout), 0, 0, deadline); errno != wasip1.ErrnoSuccess {
		return fmt.Errorf("subscribe deadline: %w", errno)
	}

	fmt.Printf("Watching %s (deadline %s)...\n", path, timeout)
	errno = p.Wait(func(ev wasip1.Event) {
		switch {
		case ev.Errno != wasip1.ErrnoSuccess:
			fmt.Printf("readiness error: %v\n", ev.Errno)
		case ev.Userdata == deadline:
			fmt.Println("deadline expired, nothing to read")
		case ev.Flags&wasip1.EventFdReadwriteHangup != 0:
			fmt.Printf("writer hung up, %d bytes still buffered\n", ev.NBytes)
		default:
			fmt.Printf("readable, %d bytes available\n", ev.NBytes)
		}
	})
	if errno != wasip1.ErrnoSuccess {
		return fmt.Errorf("wait: %w", errno)
	}
	return nil
}
