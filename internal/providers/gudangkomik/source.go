package gudangkomik

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/komikd/internal/chapters"
	"github.com/brogergvhs/komikd/internal/dates"
	"github.com/brogergvhs/komikd/internal/providers"
	"github.com/brogergvhs/komikd/internal/util"
)

func init() {
	for _, v := range Variants {
		providers.Register(v.Info, func(c *http.Client, opts providers.Options) providers.Source {
			return New(c, v, opts)
		})
	}
}

type logger interface {
	Warnf(string, ...any)
	Debugf(string, ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Debugf(string, ...any) {}

type Source struct {
	client  *http.Client
	variant Variant
	baseURL string
	dates   *dates.Resolver
	log     logger
}

func New(c *http.Client, v Variant, opts providers.Options) *Source {
	s := &Source{
		client:  c,
		variant: v,
		baseURL: strings.TrimRight(v.Info.BaseURL, "/"),
		log:     nopLogger{},
	}
	if opts.BaseURL != "" {
		s.baseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Logger != nil {
		s.log = opts.Logger
	}

	dopts := []dates.Option{dates.WithClock(opts.Now)}
	if opts.Timezone != "" {
		loc, err := time.LoadLocation(opts.Timezone)
		if err != nil {
			s.log.Warnf("unknown timezone %q, using local time: %v", opts.Timezone, err)
		} else {
			dopts = append(dopts, dates.WithLocation(loc))
		}
	}
	s.dates = dates.NewResolver(v.Locale, dopts...)

	return s
}

func (s *Source) Info() providers.Info {
	info := s.variant.Info
	info.BaseURL = s.baseURL
	return info
}

func (s *Source) Popular(ctx context.Context, page int) (providers.MangasPage, error) {
	return s.listing(ctx, fmt.Sprintf("%s/list/comic/hot?%d", s.baseURL, page))
}

func (s *Source) Latest(ctx context.Context, page int) (providers.MangasPage, error) {
	return s.listing(ctx, fmt.Sprintf("%s/list/comic/terbaru?%d", s.baseURL, page))
}

func (s *Source) Search(ctx context.Context, page int, query string) (providers.MangasPage, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", fmt.Sprint(page))

	return s.listing(ctx, s.baseURL+"/list/comic/search?"+q.Encode())
}

func (s *Source) listing(ctx context.Context, target string) (providers.MangasPage, error) {
	doc, err := s.fetchDOM(ctx, target)
	if err != nil {
		return providers.MangasPage{}, err
	}

	return parseListing(doc.Selection, s.variant.Listing), nil
}

func parseListing(doc *goquery.Selection, l Listing) providers.MangasPage {
	var out providers.MangasPage
	doc.Find(l.Card).Each(func(_ int, card *goquery.Selection) {
		href := l.Link.From(card)
		if href == "" {
			return
		}

		out.Mangas = append(out.Mangas, providers.Manga{
			URL:          withoutDomain(href),
			Title:        l.Title.From(card),
			ThumbnailURL: l.Thumbnail.From(card),
		})
	})
	out.HasNextPage = doc.Find(l.NextPage).Length() > 0

	return out
}

func (s *Source) MangaDetails(ctx context.Context, mangaURL string) (providers.Manga, error) {
	doc, err := s.fetchDOM(ctx, resolve(s.baseURL+"/", mangaURL))
	if err != nil {
		return providers.Manga{}, err
	}

	m := parseDetails(doc.Selection, s.variant.Details)
	m.URL = withoutDomain(mangaURL)
	if m.Title == "" && m.Author == "" && len(m.Genre) == 0 {
		return m, fmt.Errorf("manga %s: %w", mangaURL, providers.ErrNotFound)
	}

	return m, nil
}

func parseDetails(doc *goquery.Selection, d Details) providers.Manga {
	author := d.Author.From(doc)
	if d.AuthorLabel.Selector != "" {
		if label := d.AuthorLabel.From(doc); label != "" {
			if _, after, ok := strings.Cut(author, label); ok {
				author = after
			}
		}
	}
	author = strings.TrimSpace(author)

	m := providers.Manga{
		Title:        d.Title.From(doc),
		Author:       author,
		Artist:       author,
		Genre:        d.Genre.Texts(doc),
		Description:  d.Description.From(doc),
		ThumbnailURL: d.Thumbnail.From(doc),
		Status:       providers.StatusUnknown,
	}
	if d.Status.Selector != "" {
		m.Status = parseStatus(d.Status.From(doc))
	}

	return m
}

func parseStatus(s string) providers.Status {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "berjalan"):
		return providers.StatusOngoing
	case strings.Contains(s, "tamat"):
		return providers.StatusCompleted
	}

	return providers.StatusUnknown
}

// Chapters returns the chapters in site order, newest first.
func (s *Source) Chapters(ctx context.Context, mangaURL string) ([]providers.Chapter, error) {
	doc, err := s.fetchDOM(ctx, resolve(s.baseURL+"/", mangaURL))
	if err != nil {
		return nil, err
	}

	out := s.parseChapters(doc.Selection)
	if len(out) == 0 {
		return nil, fmt.Errorf("no chapters found at %s", mangaURL)
	}

	return out, nil
}

func (s *Source) parseChapters(doc *goquery.Selection) []providers.Chapter {
	cl := s.variant.Chapters

	var out []providers.Chapter
	doc.Find(cl.Row).Each(func(_ int, row *goquery.Selection) {
		link := row.Find(cl.Link).First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}

		c := providers.NewChapter()
		c.URL = withoutDomain(href)
		c.Name = providers.CollapseSpace(link.Text())

		if d := row.Find(cl.Date).First(); d.Length() > 0 {
			c.DateUpload = s.uploadDate(providers.CollapseSpace(d.Text()))
		}

		chapters.ApplyNumber(&c)
		out = append(out, c)
	})

	return out
}

func (s *Source) uploadDate(text string) int64 {
	ts, err := s.dates.ResolveNow(text)
	if err != nil {
		var perr *dates.ParseError
		if errors.As(err, &perr) {
			s.log.Warnf("chapter date %q: %s", perr.Input, perr.Reason)
		}
		return dates.Unknown
	}

	return ts
}

func (s *Source) Pages(ctx context.Context, chapterURL string) ([]providers.Page, error) {
	target := resolve(s.baseURL+"/", chapterURL)
	doc, err := s.fetchDOM(ctx, target)
	if err != nil {
		return nil, err
	}

	pages := parsePages(doc.Selection, s.variant.Pages, target)
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages found at %s", chapterURL)
	}

	return pages, nil
}

// parsePages numbers every matched image, so indexes skip over images
// without a source.
func parsePages(doc *goquery.Selection, selector, chapterURL string) []providers.Page {
	var pages []providers.Page
	i := 0
	doc.Find(selector).Each(func(_ int, img *goquery.Selection) {
		i++
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" {
			return
		}

		pages = append(pages, providers.Page{
			Index:    i,
			ImageURL: resolve(chapterURL, src),
		})
	})

	return pages
}

func (s *Source) ImageHeaders(imageURL string) http.Header {
	h := http.Header{}
	if strings.Contains(imageURL, s.variant.CDNHost) {
		h.Set("Accept", imageAccept)
		return h
	}

	h.Set("User-Agent", imageUA)
	h.Set("Referer", s.baseURL)

	return h
}

func (s *Source) fetchDOM(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	s.log.Debugf("GET %s", target)

	resp, err := util.DoWithRetry(s.client, req, 3, 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", target, providers.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: HTTP %d", target, resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
