package ui

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// Summary collects the outcome of a download run across chapter workers.
type Summary struct {
	Chapters atomic.Int64
	Pages    atomic.Int64
	Bytes    atomic.Int64

	start  time.Time
	mu     sync.Mutex
	failed map[string]string
}

func NewSummary() *Summary {
	return &Summary{start: time.Now(), failed: map[string]string{}}
}

func (s *Summary) Done(pages int, bytes int64) {
	s.Chapters.Add(1)
	s.Pages.Add(int64(pages))
	s.Bytes.Add(bytes)
}

// Fail records why the chapter with the given label was not written.
func (s *Summary) Fail(label string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed[label] = err.Error()
}

// Failed returns the failed chapter labels, sorted.
func (s *Summary) Failed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.failed))
	for label := range s.failed {
		out = append(out, label)
	}
	sort.Strings(out)

	return out
}

func (s *Summary) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Download Summary:")
	_, _ = fmt.Fprintf(w, "Chapters: %d\n", s.Chapters.Load())
	_, _ = fmt.Fprintf(w, "Pages:    %d\n", s.Pages.Load())
	_, _ = fmt.Fprintf(w, "Data:     %s\n", humanize.IBytes(uint64(s.Bytes.Load())))
	_, _ = fmt.Fprintf(w, "Time:     %s\n", time.Since(s.start).Round(time.Second))

	failed := s.Failed()
	if len(failed) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "Failed:   %d\n", len(failed))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, label := range failed {
		_, _ = fmt.Fprintf(w, "  Ch.%s: %s\n", label, s.failed[label])
	}
}
