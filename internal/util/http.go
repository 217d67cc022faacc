package util

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"sync"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"golang.org/x/time/rate"
)

type HTTPClientOptions struct {
	Timeout    time.Duration
	UserAgent  string
	Cookie     string
	CookieFile string
	Transport  http.RoundTripper
	// Cloudflare swaps the TLS fingerprint and headers for ones that pass
	// the Cloudflare browser check.
	Cloudflare bool
	// RateLimit caps requests per second to each remote host; 0 disables it.
	RateLimit   float64
	DebugLogger interface {
		Debugf(string, ...any)
	}
}

func NewHTTPClient(opts HTTPClientOptions) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	base := opts.Transport
	if base == nil {
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 16,
			ForceAttemptHTTP2:   true,
		}
	}
	if opts.Cloudflare {
		base = cloudflarebp.AddCloudFlareByPass(base)
	}

	cookie, err := joinCookies(opts.Cookie, opts.CookieFile)
	if err != nil {
		return nil, err
	}

	t := &siteTransport{
		base:   base,
		ua:     opts.UserAgent,
		cookie: cookie,
		limits: newHostLimits(opts.RateLimit),
		log:    opts.DebugLogger,
	}

	if t.log != nil {
		t.log.Debugf("HTTP client: timeout=%s ua=%q cookie_file=%q cloudflare=%t rate_limit=%g/s",
			opts.Timeout, opts.UserAgent, opts.CookieFile, opts.Cloudflare, opts.RateLimit)
	}

	return &http.Client{Timeout: opts.Timeout, Transport: t, Jar: jar}, nil
}

// siteTransport adds the configured identity to every request and paces
// requests per host.
type siteTransport struct {
	base   http.RoundTripper
	ua     string
	cookie string
	limits *hostLimits
	log    interface{ Debugf(string, ...any) }
}

func (t *siteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limits.wait(req.Context(), req.URL.Hostname()); err != nil {
		return nil, err
	}

	req = req.Clone(req.Context())
	if t.ua != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.ua)
	}
	if t.cookie != "" && req.Header.Get("Cookie") == "" {
		req.Header.Set("Cookie", t.cookie)
	}

	if t.log != nil {
		t.log.Debugf("HTTP %s %s", req.Method, req.URL)
	}

	return t.base.RoundTrip(req)
}

// hostLimits holds one token bucket per host. Loopback hosts are never paced.
type hostLimits struct {
	every rate.Limit
	burst int

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

func newHostLimits(perSecond float64) *hostLimits {
	if perSecond <= 0 {
		return nil
	}

	return &hostLimits{
		every: rate.Limit(perSecond),
		burst: max(1, int(math.Ceil(perSecond))),
		hosts: map[string]*rate.Limiter{},
	}
}

func (h *hostLimits) limiter(host string) *rate.Limiter {
	if h == nil || isLoopback(host) {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.hosts[host]
	if !ok {
		l = rate.NewLimiter(h.every, h.burst)
		h.hosts[host] = l
	}

	return l
}

func (h *hostLimits) wait(ctx context.Context, host string) error {
	if l := h.limiter(host); l != nil {
		return l.Wait(ctx)
	}

	return nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// joinCookies appends the first non-empty line of file to the inline cookie string.
func joinCookies(inline, file string) (string, error) {
	parts := []string{}
	if s := strings.TrimSpace(inline); s != "" {
		parts = append(parts, s)
	}

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return "", fmt.Errorf("cookie file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()

		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				parts = append(parts, line)
				break
			}
		}
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("cookie file: %w", err)
		}
	}

	return strings.Join(parts, "; "), nil
}

// DoWithRetry retries transport errors and 5xx responses, waiting
// backoff*attempt in between and giving up early when the request context
// is done.
func DoWithRetry(c *http.Client, req *http.Request, attempts int, backoff time.Duration) (*http.Response, error) {
	var lastErr error

	for i := 1; i <= attempts; i++ {
		resp, err := c.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode >= 500:
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d after %d attempts", resp.StatusCode, attempts)
		default:
			return resp, nil
		}

		if i == attempts {
			break
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(backoff * time.Duration(i)):
		}
	}

	return nil, lastErr
}

// PickUserAgent returns override, or a desktop Chrome UA.
func PickUserAgent(override string) string {
	if override != "" {
		return override
	}

	return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
}
