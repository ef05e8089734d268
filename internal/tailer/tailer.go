// Package tailer follows a growing text file line by line.
package tailer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nxadm/tail"
)

// errBuffer is the buffer size for the error channel.
const errBuffer = 16

// Config configures a Tailer.
type Config struct {
	// FromStart reads the lines already in the file before following it.
	// Otherwise only lines appended after New are delivered.
	FromStart bool
	// Poll uses polling instead of file system notifications. Needed on
	// network shares where notifications are not delivered.
	Poll bool
	// ReOpen reopens the file when it is truncated, moved or recreated.
	ReOpen bool
	// MustExist fails New when the file does not exist. Otherwise the
	// tailer waits for it to appear.
	MustExist bool
	// MaxLineSize splits longer lines. Zero means no limit.
	MaxLineSize int
}

// DefaultConfig returns the configuration used by the watch command:
// follow new lines only, reopen on rotation, and require the file.
func DefaultConfig() Config {
	return Config{
		ReOpen:      true,
		MustExist:   true,
		MaxLineSize: 64 * 1024,
	}
}

// Tailer delivers lines appended to a file.
type Tailer struct {
	t      *tail.Tail
	lines  chan string
	errs   chan error
	cancel context.CancelFunc
	done   chan struct{}

	stopErr error // written by run before done is closed
}

// New starts following path. Lines are delivered without their line
// terminator, CRLF included. Both channels close when ctx is cancelled,
// Stop is called or the underlying tail fails.
func New(ctx context.Context, path string, cfg Config) (*Tailer, error) {
	tcfg := tail.Config{
		Follow:      true,
		ReOpen:      cfg.ReOpen,
		MustExist:   cfg.MustExist,
		Poll:        cfg.Poll,
		MaxLineSize: cfg.MaxLineSize,
		Logger:      tail.DiscardingLogger,
	}
	if !cfg.FromStart {
		tcfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, tcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to tail file: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	tr := &Tailer{
		t:      t,
		lines:  make(chan string),
		errs:   make(chan error, errBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go tr.run(ctx)
	return tr, nil
}

// Lines returns the channel of lines.
func (tr *Tailer) Lines() <-chan string { return tr.lines }

// Errors returns the channel of read errors.
func (tr *Tailer) Errors() <-chan error { return tr.errs }

// Stop stops following the file and waits for the channels to close.
// Safe to call multiple times.
func (tr *Tailer) Stop() error {
	tr.cancel()
	<-tr.done
	return tr.stopErr
}

func (tr *Tailer) run(ctx context.Context) {
	defer close(tr.done)
	defer close(tr.lines)
	defer close(tr.errs)

	for {
		select {
		case <-ctx.Done():
			// The tail goroutine may be blocked sending a line, so keep
			// draining until Stop has let it exit.
			stopped := make(chan error, 1)
			go func() { stopped <- tr.t.Stop() }()
			tr.drain()
			tr.stopErr = <-stopped
			tr.t.Cleanup()
			return
		case line, ok := <-tr.t.Lines:
			if !ok {
				if err := tr.t.Wait(); err != nil {
					tr.sendError(ctx, err)
				}
				tr.t.Cleanup()
				return
			}
			if line.Err != nil {
				tr.sendError(ctx, line.Err)
				continue
			}
			select {
			case tr.lines <- strings.TrimRight(line.Text, "\r"):
			case <-ctx.Done():
			}
		}
	}
}

// drain consumes pending tail lines so the tail goroutine can exit.
func (tr *Tailer) drain() {
	for range tr.t.Lines {
	}
}

// sendError sends err without blocking; errors are dropped when the buffer
// is full.
func (tr *Tailer) sendError(ctx context.Context, err error) {
	select {
	case tr.errs <- err:
	case <-ctx.Done():
	default:
	}
}
