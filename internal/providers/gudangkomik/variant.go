package gudangkomik

import (
	"github.com/brogergvhs/komikd/internal/dates"
	"github.com/brogergvhs/komikd/internal/providers"
)

const (
	imageAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3"
	imageUA     = "Mozilla/5.0 (Linux; Android 10) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.164 Mobile Safari/537.36"
)

type Listing struct {
	Card      string
	Thumbnail providers.Field
	Title     providers.Field
	Link      providers.Field
	NextPage  string
}

// Details fields are looked up from the document root.
type Details struct {
	Title       providers.Field
	Author      providers.Field
	AuthorLabel providers.Field // stripped from the front of Author when set
	Genre       providers.Field
	Status      providers.Field // empty means the layout shows no status
	Description providers.Field
	Thumbnail   providers.Field
}

type ChapterList struct {
	Row  string
	Link string
	Date string
}

type Variant struct {
	Info    providers.Info
	Locale  dates.Locale
	CDNHost string

	Listing  Listing
	Details  Details
	Chapters ChapterList
	Pages    string
}

var listing = Listing{
	Card:      "div.grid.grid-rows-3",
	Thumbnail: providers.Attr("div.row-span-2.flex.justify-center img", "src"),
	Title:     providers.Text("div.h-44.text-left h3"),
	Link:      providers.Attr("div.h-44.text-left > a", "href"),
	NextPage:  "a.relative.inline-flex",
}

// Current is the Tailwind layout with English relative dates.
var Current = Variant{
	Info: providers.Info{
		ID:      "gudangkomik",
		Name:    "GudangKomik",
		Lang:    "id",
		BaseURL: "https://gudangkomik.com",
	},
	Locale:  dates.English,
	CDNHost: "cdn.gudangkomik.com",
	Listing: listing,
	Details: Details{
		Title:       providers.Text(`div.px-10.col-span-1.lg\:col-span-2 h1`),
		Author:      providers.Text(`div.px-10.col-span-1.lg\:col-span-2 h2`),
		Genre:       providers.Text(`div.px-10.col-span-1.lg\:col-span-2 div.flex.flex-wrap a`),
		Description: providers.Text(`div.px-10.col-span-1.lg\:col-span-2 p`),
		Thumbnail:   providers.Attr(`div.grid.grid-cols-1.lg\:grid-cols-4.bg-white.p-2.rounded img`, "src"),
	},
	Chapters: ChapterList{
		Row:  "ul.max-h-96.overflow-auto.px-5 > li",
		Link: "a",
		Date: ".dt a",
	},
	Pages: "div.my-4 img",
}

// Legacy is the older komikindo-style layout with Indonesian dates.
var Legacy = Variant{
	Info: providers.Info{
		ID:      "gudangkomik-legacy",
		Name:    "GudangKomik (legacy)",
		Lang:    "id",
		BaseURL: "https://gudangkomik.com",
	},
	Locale:  dates.Indonesian,
	CDNHost: "komikcdn.me",
	Listing: listing,
	Details: Details{
		Title:       providers.Text("div.infoanime h1"),
		Author:      providers.Text(`.infox .spe span:contains("Pengarang")`),
		AuthorLabel: providers.Text(`.infox .spe b:contains("Pengarang")`),
		Genre:       providers.Text("div.infoanime .infox > .genre-info > a"),
		Status:      providers.Text("div.infoanime .infox > .spe > span:nth-child(1)"),
		Description: providers.Text("div.desc > .entry-content.entry-content-single p"),
		Thumbnail:   providers.Attr(".thumb > img:nth-child(1)", "src"),
	},
	Chapters: ChapterList{
		Row:  "#chapter_list li",
		Link: ".lchx a",
		Date: ".dt a",
	},
	Pages: "div.imgch img",
}

var Variants = []Variant{Current, Legacy}
