// Package dates turns the upload-date strings rendered by catalog sites
// ("3 jam lalu", "2 hours ago", "Jan 5, 2023") into epoch milliseconds.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Unknown is returned for dates that could not be resolved. It is not a
// real timestamp.
const Unknown int64 = 0

// absoluteDate matches a "Jan 2, 2006" prefix. Trailing text is ignored
// and out-of-range days roll over into the next month.
var absoluteDate = regexp.MustCompile(`^([A-Za-z]+) +([0-9]{1,9}), *([0-9]{1,9})`)

// ParseError is returned when a relative date has no usable magnitude.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Input)
}

type Resolver struct {
	locale Locale
	loc    *time.Location
	clock  func() time.Time
}

type Option func(*Resolver)

// WithLocation sets the zone absolute dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(r *Resolver) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithClock replaces the clock used by ResolveNow.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.clock = now
		}
	}
}

func NewResolver(locale Locale, opts ...Option) *Resolver {
	r := &Resolver{
		locale: locale,
		loc:    time.Local,
		clock:  time.Now,
	}
	for _, o := range opts {
		o(r)
	}

	return r
}

func (r *Resolver) Locale() Locale {
	return r.locale
}

// ResolveNow resolves text against the resolver's clock.
func (r *Resolver) ResolveNow(text string) (int64, error) {
	return r.Resolve(text, r.clock())
}

// Resolve converts text to epoch milliseconds relative to now. Unmatched
// units and unparseable absolute dates yield Unknown; a relative date with
// a unit but a non-numeric leading token, or with nothing before the
// marker, yields a *ParseError.
func (r *Resolver) Resolve(text string, now time.Time) (int64, error) {
	if !strings.Contains(text, r.locale.Marker) {
		return r.absolute(text), nil
	}

	// "lalu" on its own carries no magnitude at all.
	head, _, _ := strings.Cut(text, " ")
	if head == "" || head == r.locale.Marker {
		return Unknown, magnitudeError(text)
	}

	unit, ok := r.unitOf(text)
	if !ok {
		return Unknown, nil
	}

	n, err := strconv.ParseInt(head, 10, 32)
	if err != nil {
		return Unknown, magnitudeError(text)
	}

	return Subtract(now, unit, int(n)).UnixMilli(), nil
}

func (r *Resolver) unitOf(text string) (Unit, bool) {
	for _, kw := range r.locale.Keywords {
		if strings.Contains(text, kw.Word) {
			return kw.Unit, true
		}
	}

	return 0, false
}

func magnitudeError(text string) error {
	return &ParseError{Input: text, Reason: "invalid relative-date magnitude"}
}

func (r *Resolver) absolute(text string) int64 {
	m := absoluteDate.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Unknown
	}

	month, ok := monthNamed(m[1])
	if !ok {
		return Unknown
	}
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	return time.Date(year, month, day, 0, 0, 0, 0, r.loc).UnixMilli()
}

// monthNamed accepts English month names, full or three-letter, in any case.
func monthNamed(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		full := m.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return m, true
		}
	}

	return 0, false
}

// Subtract moves t back n units. Months and years keep the day of month,
// clamped to the length of the target month.
func Subtract(t time.Time, u Unit, n int) time.Time {
	switch u {
	case Seconds:
		return back(t, int64(n))
	case Minutes:
		return back(t, int64(n)*60)
	case Hours:
		return back(t, int64(n)*3600)
	case Days:
		return t.AddDate(0, 0, -n)
	case Weeks:
		return t.AddDate(0, 0, -7*n)
	case Months:
		return addMonths(t, -n)
	case Years:
		return addMonths(t, -12*n)
	}

	return t
}

// back works in whole seconds; a time.Duration overflows past ~292 years.
func back(t time.Time, seconds int64) time.Time {
	return time.Unix(t.Unix()-seconds, int64(t.Nanosecond())).In(t.Location())
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + months
	year := y + floorDiv(total, 12)
	month := time.Month(total-floorDiv(total, 12)*12 + 1)

	if last := daysIn(year, month); d > last {
		d = last
	}

	hh, mm, ss := t.Clock()

	return time.Date(year, month, d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
