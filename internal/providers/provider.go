package providers

import (
	"context"
	"errors"
	"net/http"
)

var ErrNotFound = errors.New("not found")

type Status int

const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// UnsetNumber marks a chapter whose number could not be read from its name.
const UnsetNumber = -1

type Manga struct {
	URL          string
	Title        string
	Author       string
	Artist       string
	Description  string
	Genre        []string
	Status       Status
	ThumbnailURL string
}

type MangasPage struct {
	Mangas      []Manga
	HasNextPage bool
}

type Chapter struct {
	URL  string
	Name string
	// DateUpload is epoch milliseconds, 0 when unknown.
	DateUpload int64
	Number     float64
}

func NewChapter() Chapter {
	return Chapter{Number: UnsetNumber}
}

func (c Chapter) HasNumber() bool {
	return c.Number != UnsetNumber
}

type Page struct {
	Index    int
	URL      string
	ImageURL string
}

type Info struct {
	ID      string
	Name    string
	Lang    string
	BaseURL string
}

type Source interface {
	Info() Info
	Popular(ctx context.Context, page int) (MangasPage, error)
	Latest(ctx context.Context, page int) (MangasPage, error)
	Search(ctx context.Context, page int, query string) (MangasPage, error)
	MangaDetails(ctx context.Context, mangaURL string) (Manga, error)
	Chapters(ctx context.Context, mangaURL string) ([]Chapter, error)
	Pages(ctx context.Context, chapterURL string) ([]Page, error)
	// ImageHeaders returns the request headers an image host expects.
	ImageHeaders(imageURL string) http.Header
}
