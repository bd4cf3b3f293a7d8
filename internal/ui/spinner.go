package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a one-line progress indicator for non-TUI commands, such
// as waiting for a transaction to confirm. The full-screen view uses the
// bubbles spinner model directly.
type Spinner struct {
	out   io.Writer
	style spinner.Spinner

	mu  sync.Mutex
	msg string

	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner writing to stdout.
func NewSpinner(msg string) *Spinner {
	return &Spinner{
		out:   os.Stdout,
		style: spinner.MiniDot,
		msg:   msg,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start begins the animation in a goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.style.FPS)
		defer ticker.Stop()
		for i := 0; ; i++ {
			s.mu.Lock()
			msg := s.msg
			s.mu.Unlock()
			frame := StyleChain.Render(s.style.Frames[i%len(s.style.Frames)])
			fmt.Fprintf(s.out, "\r\033[K%s  %s", frame, msg)

			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Update replaces the message shown next to the spinner.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop halts the spinner and waits for it to finish.
func (s *Spinner) Stop() {
	close(s.stop)
	<-s.done
}

// StopWithMsg halts the spinner and prints a final message.
func (s *Spinner) StopWithMsg(msg string) {
	s.Stop()
	fmt.Fprintln(s.out, msg)
}
