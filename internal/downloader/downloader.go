package downloader

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brogergvhs/komikd/internal/providers"
)

// Progress receives per-chapter download progress.
type Progress interface {
	Update(done, total int, bytes int64)
	MarkDone()
}

// HeaderFunc returns the extra request headers for one image URL.
type HeaderFunc func(imageURL string) http.Header

type Logger interface {
	Debugf(format string, args ...any)
}

type Downloader struct {
	client     *http.Client
	log        Logger
	skipBroken bool

	attempts  int
	retryWait time.Duration
}

func New(c *http.Client, log Logger, skipBroken bool) *Downloader {
	return &Downloader{
		client:     c,
		log:        log,
		skipBroken: skipBroken,
		attempts:   3,
		retryWait:  time.Second,
	}
}

// imageExt keeps the extension of the URL path, ignoring any query string.
func imageExt(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	ext := strings.ToLower(filepath.Ext(u))
	if ext == "" || len(ext) > 5 {
		return ".jpg"
	}

	return ext
}

// pageFile names a page by its index on the chapter page, so gaps in the
// index survive into the archive.
func pageFile(p providers.Page) string {
	return fmt.Sprintf("page_%03d%s", p.Index, imageExt(p.ImageURL))
}

// Loading spinners and ad banners are served as GIFs; chapters never are.
func isPlaceholder(p providers.Page) bool {
	return imageExt(p.ImageURL) == ".gif"
}

// DownloadImagesConcurrently saves pages into folder with at most
// maxParallel requests in flight and returns the written files, sorted,
// with the byte count. A failed page fails the chapter unless the
// downloader skips broken pages.
func (d *Downloader) DownloadImagesConcurrently(
	ctx context.Context,
	pages []providers.Page,
	folder string,
	headers HeaderFunc,
	maxParallel int,
	ph Progress,
) ([]string, int64, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, 0, err
	}
	defer ph.MarkDone()

	t := &tally{ph: ph, total: len(pages)}
	t.report()

	queue := make(chan providers.Page)
	var wg sync.WaitGroup
	for range min(max(1, maxParallel), max(1, len(pages))) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range queue {
				d.savePage(ctx, p, folder, headers, t)
			}
		}()
	}

feed:
	for _, p := range pages {
		select {
		case <-ctx.Done():
			break feed
		case queue <- p:
		}
	}
	close(queue)
	wg.Wait()

	files, bytes, failed := t.result()
	if err := ctx.Err(); err != nil {
		return files, bytes, err
	}
	if len(failed) > 0 && !d.skipBroken {
		return files, bytes, fmt.Errorf("failed %d/%d images (use --skip-broken to continue): %w", len(failed), len(pages), failed[0])
	}

	return files, bytes, nil
}

func (d *Downloader) savePage(ctx context.Context, p providers.Page, folder string, headers HeaderFunc, t *tally) {
	if isPlaceholder(p) {
		t.finish("", nil)
		return
	}

	var extra http.Header
	if headers != nil {
		extra = headers(p.ImageURL)
	}

	path := filepath.Join(folder, pageFile(p))
	err := d.retry(ctx, func() error {
		return d.fetch(ctx, p.ImageURL, path, extra, t)
	})
	if err != nil {
		if d.log != nil {
			d.log.Debugf("page %d (%s): %v", p.Index, p.ImageURL, err)
		}
		t.finish("", fmt.Errorf("page %d: %w", p.Index, err))
		return
	}

	t.finish(path, nil)
}

func (d *Downloader) retry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		if err = fn(); err == nil || ctx.Err() != nil {
			return err
		}
		if attempt == d.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * d.retryWait):
		}
	}

	return err
}

func imageRequestHeaders(extra http.Header) http.Header {
	h := http.Header{}
	h.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	h.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")
	h.Set("Cache-Control", "no-cache")
	for k, vs := range extra {
		h[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}

	return h
}

// fetch writes one image to path through a .part file, so path only ever
// holds a complete image.
func (d *Downloader) fetch(ctx context.Context, u, path string, extra http.Header, t *tally) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header = imageRequestHeaders(extra)

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			return fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	part := path + ".part"
	f, err := os.Create(part)
	if err != nil {
		return err
	}

	w := &countingWriter{w: f, add: t.addBytes}
	_, err = io.Copy(w, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		t.addBytes(-w.n)
		_ = os.Remove(part)
		return err
	}

	return os.Rename(part, path)
}

type countingWriter struct {
	w   io.Writer
	n   int64
	add func(int64)
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.add(int64(n))
	return n, err
}

// tally is the shared state of one chapter's workers.
type tally struct {
	mu     sync.Mutex
	ph     Progress
	total  int
	done   int
	bytes  int64
	files  []string
	failed []error
}

// report must be called with mu held, or before the workers start.
func (t *tally) report() {
	t.ph.Update(t.done, t.total, t.bytes)
}

func (t *tally) addBytes(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bytes += n
	t.report()
}

// finish counts a page as handled; path is empty for skipped or failed pages.
func (t *tally) finish(path string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.done++
	if path != "" {
		t.files = append(t.files, path)
	}
	if err != nil {
		t.failed = append(t.failed, err)
	}
	t.report()
}

func (t *tally) result() ([]string, int64, []error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	files := append([]string(nil), t.files...)
	sort.Strings(files)

	return files, t.bytes, t.failed
}
