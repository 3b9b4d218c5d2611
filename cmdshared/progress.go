package cmdshared

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// Progress is a progress bar on stderr. The zero value (used when stderr isn't a terminal) does nothing.
type Progress struct {
	container *mpb.Progress
	bar       *mpb.Bar
	cancel    context.CancelFunc
}

// NewProgress creates a progress bar for total items, only if stderr is a terminal
func NewProgress(ctx context.Context, label string, total int) *Progress {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return &Progress{}
	}
	ctx, cancel := context.WithCancel(ctx)
	container := mpb.NewWithContext(ctx, mpb.WithOutput(os.Stderr), mpb.WithWidth(40))
	bar := container.AddBar(int64(total),
		mpb.PrependDecorators(decor.Name(label+" ")),
		mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
	)
	return &Progress{container: container, bar: bar, cancel: cancel}
}

// Increment advances the bar by one; it is safe to call concurrently
func (p *Progress) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Finish waits for the bar to be drawn. If the operation failed the bar is abandoned instead.
func (p *Progress) Finish(failed bool) {
	if p.container == nil {
		return
	}
	if failed {
		p.cancel()
	}
	p.container.Wait()
	p.cancel()
}
