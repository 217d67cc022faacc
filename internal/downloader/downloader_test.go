package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brogergvhs/komikd/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	updates int
	done    bool
}

func (r *recorder) Update(done, total int, bytes int64) {
	r.mu.Lock()
	r.updates++
	r.mu.Unlock()
}

func (r *recorder) MarkDone() {
	r.mu.Lock()
	r.done = true
	r.mu.Unlock()
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != "https://gudangkomik.com" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	})
	mux.HandleFunc("/html/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func referer(string) http.Header {
	h := http.Header{}
	h.Set("Referer", "https://gudangkomik.com")
	return h
}

func TestDownloadImagesConcurrently(t *testing.T) {
	srv := imageServer(t)
	dir := t.TempDir()

	pages := []providers.Page{
		{Index: 1, ImageURL: srv.URL + "/img/1.png"},
		{Index: 3, ImageURL: srv.URL + "/img/3.png?w=800"},
		{Index: 4, ImageURL: srv.URL + "/img/spinner.gif"},
	}

	rec := &recorder{}
	d := New(srv.Client(), nil, false)
	files, bytes, err := d.DownloadImagesConcurrently(context.Background(), pages, dir, referer, 2, rec)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "page_001.png"),
		filepath.Join(dir, "page_003.png"),
	}, files)
	assert.Equal(t, int64(2*len("png-bytes")), bytes)
	assert.True(t, rec.done)

	b, err := os.ReadFile(filepath.Join(dir, "page_003.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))
}

func TestDownloadReportsFailures(t *testing.T) {
	srv := imageServer(t)

	pages := []providers.Page{{Index: 1, ImageURL: srv.URL + "/html/1.jpg"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(srv.Client(), nil, false)
	_, _, err := d.DownloadImagesConcurrently(ctx, pages, t.TempDir(), referer, 1, &recorder{})
	assert.Error(t, err)
}

func flakyServer(t *testing.T, failures int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= failures {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg"))
	}))
	t.Cleanup(srv.Close)

	return srv, &hits
}

func TestDownloadRetriesPages(t *testing.T) {
	srv, hits := flakyServer(t, 2)
	dir := t.TempDir()

	d := New(srv.Client(), nil, false)
	d.retryWait = time.Millisecond

	pages := []providers.Page{{Index: 7, ImageURL: srv.URL + "/07.jpg"}}
	files, bytes, err := d.DownloadImagesConcurrently(context.Background(), pages, dir, nil, 1, &recorder{})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "page_007.jpg")}, files)
	assert.Equal(t, int64(4), bytes)
	assert.Equal(t, int32(3), hits.Load())

	left, err := filepath.Glob(filepath.Join(dir, "*.part"))
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestSkipBrokenPages(t *testing.T) {
	srv := imageServer(t)
	pages := []providers.Page{
		{Index: 1, ImageURL: srv.URL + "/img/1.png"},
		{Index: 2, ImageURL: srv.URL + "/html/2.png"},
	}

	strict := New(srv.Client(), nil, false)
	strict.retryWait = time.Millisecond
	_, _, err := strict.DownloadImagesConcurrently(context.Background(), pages, t.TempDir(), referer, 2, &recorder{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed 1/2 images")
	assert.Contains(t, err.Error(), "unexpected MIME")

	lenient := New(srv.Client(), nil, true)
	lenient.retryWait = time.Millisecond
	dir := t.TempDir()
	files, _, err := lenient.DownloadImagesConcurrently(context.Background(), pages, dir, referer, 2, &recorder{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "page_001.png")}, files)
}

func TestImageExt(t *testing.T) {
	assert.Equal(t, ".webp", imageExt("https://cdn/x/01.WEBP?token=abc"))
	assert.Equal(t, ".jpg", imageExt("https://cdn/x/page"))
	assert.Equal(t, ".jpg", imageExt("https://cdn/x/page.longext"))
}
