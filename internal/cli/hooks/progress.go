package hooks

import (
	"io"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// mpbProgressBar adapts an mpb bar to the ProgressBar interface.
type mpbProgressBar struct {
	p     *mpb.Progress
	bar   *mpb.Bar
	total int64

	mu      sync.Mutex
	current string
	closed  bool
}

// NewProgressBar draws a bar for total pages on out.
func NewProgressBar(out io.Writer, total int) ProgressBar {
	pb := &mpbProgressBar{total: int64(total)}
	pb.p = mpb.New(mpb.WithOutput(out), mpb.WithWidth(40), mpb.WithRefreshRate(100*time.Millisecond))
	name := "pages "
	pb.bar = pb.p.New(pb.total, mpb.BarStyle().Rbound("|").Lbound("|"),
		mpb.PrependDecorators(decor.Name(name, decor.WC{W: len(name), C: decor.DSyncWidth}), decor.Percentage()),
		mpb.AppendDecorators(
			decor.CountersNoUnit(" %d / %d"),
			decor.Any(func(decor.Statistics) string {
				pb.mu.Lock()
				defer pb.mu.Unlock()
				if pb.current == "" {
					return ""
				}
				return " " + pb.current
			}),
		))
	return pb
}

// Add implements ProgressBar.
func (b *mpbProgressBar) Add(num int) error {
	b.bar.IncrBy(num)
	return nil
}

// Describe implements ProgressBar.
func (b *mpbProgressBar) Describe(description string) error {
	b.mu.Lock()
	b.current = description
	b.mu.Unlock()
	return nil
}

// Close completes the bar and waits for the final render.
func (b *mpbProgressBar) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.current = ""
	b.mu.Unlock()

	// A stopped run leaves the bar short; mark it complete at its current value.
	b.bar.SetTotal(-1, true)
	b.p.Wait()
	return nil
}
