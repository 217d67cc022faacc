package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/komikd/internal/chapters"
	"github.com/brogergvhs/komikd/internal/providers"

	"github.com/dustin/go-humanize"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bars draws one progress bar per chapter download.
type Bars struct {
	p *mpb.Progress
}

func NewBars(w io.Writer) *Bars {
	return &Bars{p: mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(w),
		mpb.WithRefreshRate(120*time.Millisecond),
	)}
}

// Wait blocks until every bar is done or aborted.
func (b *Bars) Wait() {
	b.p.Wait()
}

// ChapterBar tracks the pages of one chapter. It satisfies downloader.Progress.
type ChapterBar struct {
	bar   *mpb.Bar
	gaps  int
	start time.Time

	pages  atomic.Int64
	bytes  atomic.Int64
	took   atomic.Int64
	closed atomic.Bool
}

// Chapter adds a bar sized to the chapter's pages.
func (b *Bars) Chapter(ch chapters.Chapter, pages []providers.Page) *ChapterBar {
	c := &ChapterBar{
		gaps:  pageGaps(pages),
		start: time.Now(),
	}
	c.pages.Store(int64(len(pages)))

	c.bar = b.p.New(0,
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(BarLabel(ch), decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d pages", decor.WCSyncWidth),
			decor.Any(func(decor.Statistics) string {
				s := " | " + humanize.IBytes(uint64(c.bytes.Load()))
				if c.gaps > 0 {
					s += fmt.Sprintf(" | %d without image", c.gaps)
				}
				return s
			}),
			decor.Any(func(decor.Statistics) string {
				if c.closed.Load() {
					return fmt.Sprintf(" | %ds", c.took.Load())
				}
				return fmt.Sprintf(" | %ds", int(time.Since(c.start).Seconds()))
			}),
		),
	)
	c.bar.SetTotal(c.pages.Load(), false)

	return c
}

// BarLabel names a chapter as "Ch.<label> #<number>", or "Ch.<label> #?"
// when the title carried no number.
func BarLabel(ch chapters.Chapter) string {
	number := "?"
	if ch.HasNumber() {
		number = fmt.Sprintf("%g", ch.Number)
	}

	return fmt.Sprintf("Ch.%s #%s", ch.Label, number)
}

// pageGaps counts the images the site listed without a source: page
// indexes run over every image, so they skip those.
func pageGaps(pages []providers.Page) int {
	if len(pages) == 0 {
		return 0
	}

	return pages[len(pages)-1].Index - len(pages)
}

func (c *ChapterBar) Update(done, total int, bytes int64) {
	if c.closed.Load() {
		return
	}
	if total > 0 && int64(total) != c.pages.Load() {
		c.pages.Store(int64(total))
		c.bar.SetTotal(int64(total), false)
	}

	c.bytes.Store(bytes)
	c.bar.SetCurrent(int64(done))
}

// MarkDone completes the bar; later updates are ignored.
func (c *ChapterBar) MarkDone() {
	if c.closed.Swap(true) {
		return
	}

	c.took.Store(int64(time.Since(c.start).Seconds()))
	c.bar.SetCurrent(c.pages.Load())
	c.bar.SetTotal(c.pages.Load(), true)
}
