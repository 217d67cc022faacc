package dates

// Unit is a calendar step applied when a relative date is resolved.
type Unit int

const (
	Seconds Unit = iota
	Minutes
	Hours
	Days
	Weeks
	Months
	Years
)

// Keyword maps a substring of a relative date to its unit.
type Keyword struct {
	Word string
	Unit Unit
}

// Locale is the keyword table of one site language. Keywords are matched
// in slice order and the first hit wins.
type Locale struct {
	Name     string
	Marker   string
	Keywords []Keyword
}

var Indonesian = Locale{
	Name:   "id",
	Marker: "lalu",
	Keywords: []Keyword{
		{"detik", Seconds},
		{"menit", Minutes},
		{"jam", Hours},
		{"hari", Days},
		{"minggu", Weeks},
		{"bulan", Months},
		{"tahun", Years},
	},
}

var English = Locale{
	Name:   "en",
	Marker: "ago",
	Keywords: []Keyword{
		{"seconds", Seconds},
		{"minutes", Minutes},
		{"hours", Hours},
		{"day", Days},
		{"weeks", Weeks},
		{"months", Months},
		{"years", Years},
	},
}

// LocaleByName returns one of the built-in tables.
func LocaleByName(name string) (Locale, bool) {
	switch name {
	case Indonesian.Name:
		return Indonesian, true
	case English.Name:
		return English, true
	}

	return Locale{}, false
}
