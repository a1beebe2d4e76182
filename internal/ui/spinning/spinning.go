// Package spinning provides a friendly spinning clock (or some other spinning symbols)
// to use while the AI is thinking, along with the elapsed time.
package spinning

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"k8s.io/klog/v2"
)

// Spinning is a running spinner, see New.
type Spinning struct {
	wg     sync.WaitGroup
	cancel func()
	start  time.Time
}

var (
	ThemeAscii = []rune(`|/-\`)
	ThemeMoon  = []rune("\U0001F311\U0001F312\U0001F313\U0001F314\U0001F315\U0001F316\U0001F317\U0001F318")
	ThemeClock = []rune("\U0001F550\U0001F551\U0001F552\U0001F553\U0001F554\U0001F555" +
		"\U0001F556\U0001F557\U0001F558\U0001F559\U0001F55A\U0001F55B")

	// Theme defaults to ThemeClock, but it can be set to anything else.
	Theme = ThemeClock

	// Output where the spinner is displayed.
	Output io.Writer = os.Stdout

	// Period between updates of the spinner.
	Period = 250 * time.Millisecond
)

// SafeInterrupt will capture SigInt (Ctrl+C) and SigTerm and call the provided onInterrupt.
// If the program hasn't exited after gracePeriod, it will call Reset to reset the terminal
// and exit.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		_, _ = fmt.Fprintln(Output)
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	_, _ = fmt.Fprint(Output, "\033[?25h\033[39;49;0m\n")
}

// New starts a spinning display, followed by the elapsed time, that runs on a separate goroutine.
// It stops when Spinning.Done is called, or when ctx is cancelled.
func New(ctx context.Context) *Spinning {
	s := &Spinning{start: time.Now()}
	ctx, s.cancel = context.WithCancel(ctx)
	theme := Theme
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(Period)
		defer ticker.Stop()
		_, _ = fmt.Fprint(Output, "\033[?25l\0337")     // Hide cursor, save its position.
		defer fmt.Fprint(Output, "\0338\033[0K\033[?25h") // Erase spinner, restore cursor.
		for idx := 0; ; idx = (idx + 1) % len(theme) {
			_, _ = fmt.Fprintf(Output, "\0338%c %s\033[0K", theme[idx], s.Elapsed().Truncate(100*time.Millisecond))
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Elapsed time since the spinner started.
func (s *Spinning) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Done stops the spinner, erases it, and returns the elapsed time. It is safe to call more than once.
func (s *Spinning) Done() time.Duration {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
	return s.Elapsed()
}
