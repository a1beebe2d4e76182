package spinning

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinning(t *testing.T) {
	var buf bytes.Buffer
	Output, Period, Theme = &buf, time.Millisecond, ThemeAscii
	defer func() { Output, Period, Theme = os.Stdout, 250*time.Millisecond, ThemeClock }()

	s := New(context.Background())
	time.Sleep(20 * time.Millisecond)
	elapsed := s.Done()
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.Contains(t, buf.String(), "|")
	s.Done() // Second call is a no-op.

	// Cancelling the context also stops it.
	ctx, cancel := context.WithCancel(context.Background())
	s = New(ctx)
	cancel()
	s.wg.Wait()
}

func TestThemes(t *testing.T) {
	assert.Len(t, ThemeMoon, 8)
	assert.Len(t, ThemeClock, 12)
	assert.Len(t, ThemeAscii, 4)
}
