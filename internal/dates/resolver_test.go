package dates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 31, 15, 4, 5, 0, time.UTC)

func TestResolveRelativeIndonesian(t *testing.T) {
	r := NewResolver(Indonesian, WithLocation(time.UTC))

	tests := []struct {
		in   string
		want time.Time
	}{
		{"30 detik lalu", fixedNow.Add(-30 * time.Second)},
		{"5 menit lalu", fixedNow.Add(-5 * time.Minute)},
		{"3 jam lalu", fixedNow.Add(-3 * time.Hour)},
		{"2 hari lalu", fixedNow.AddDate(0, 0, -2)},
		{"2 minggu lalu", fixedNow.AddDate(0, 0, -14)},
		{"1 bulan lalu", time.Date(2024, time.February, 29, 15, 4, 5, 0, time.UTC)},
		{"1 tahun lalu", time.Date(2023, time.March, 31, 15, 4, 5, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := r.Resolve(tt.in, fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want.UnixMilli(), got)
		})
	}
}

func TestResolveRelativeEnglish(t *testing.T) {
	r := NewResolver(English, WithLocation(time.UTC))

	got, err := r.Resolve("2 hours ago", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(-2*time.Hour).UnixMilli(), got)

	got, err = r.Resolve("4 days ago", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -4).UnixMilli(), got)

	got, err = r.Resolve("3 weeks ago", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, -21).UnixMilli(), got)

	// singular units are not in the table
	got, err = r.Resolve("1 second ago", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, Unknown, got)
}

func TestResolveLargeMagnitudes(t *testing.T) {
	r := NewResolver(Indonesian, WithLocation(time.UTC))

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2147483647 detik lalu", time.Date(1956, time.March, 13, 11, 49, 58, 0, time.UTC)},
		{"2147483647 menit lalu", time.Date(-2059, time.March, 10, 12, 57, 5, 0, time.UTC)},
		{"2147483647 jam lalu", time.Date(-242960, time.June, 24, 8, 4, 5, 0, time.UTC)},
		{"1000000 jam lalu", time.Date(1910, time.March, 3, 23, 4, 5, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := r.Resolve(tt.in, fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want.UnixMilli(), got)
			assert.Less(t, got, fixedNow.UnixMilli())
		})
	}

	_, err := r.Resolve("2147483648 jam lalu", fixedNow)
	assert.Error(t, err)
}

func TestResolveKeywordPriority(t *testing.T) {
	r := NewResolver(Indonesian)

	// "jam" is checked before "hari"
	got, err := r.Resolve("1 jam 2 hari lalu", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(-time.Hour).UnixMilli(), got)
}

func TestResolveAbsolute(t *testing.T) {
	r := NewResolver(Indonesian, WithLocation(time.UTC))
	want := time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC).UnixMilli()

	got, err := r.Resolve("Jan 5, 2023", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, int64(1672876800000), got)

	other, err := r.Resolve("Jan 5, 2023", fixedNow.AddDate(5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, got, other)

	got, err = r.Resolve("January 5, 2023", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveAbsoluteIsLenient(t *testing.T) {
	r := NewResolver(English, WithLocation(time.UTC))

	tests := []struct {
		in   string
		want time.Time
	}{
		{"Jan 32, 2023", time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"Feb 29, 2023", time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"Jan 0, 2023", time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"Jan 5, 2023 10:00", time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"jan 5, 2023", time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"SEPTEMBER 9,2021", time.Date(2021, time.September, 9, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := r.Resolve(tt.in, fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want.UnixMilli(), got)
		})
	}
}

func TestResolveAbsoluteUsesLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	r := NewResolver(English, WithLocation(jakarta))

	got, err := r.Resolve("Feb 1, 2022", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, time.February, 1, 0, 0, 0, 0, jakarta).UnixMilli(), got)
}

func TestResolveAbsoluteFailureIsUnknown(t *testing.T) {
	r := NewResolver(English)

	for _, in := range []string{"", "kemarin", "Foo 5, 2023", "Janx 5, 2023", "Jan 5 2023", "5 Jan, 2023", "Jan , 2023"} {
		got, err := r.Resolve(in, fixedNow)
		assert.NoError(t, err, in)
		assert.Equal(t, Unknown, got, in)
	}
}

func TestResolveMissingMagnitude(t *testing.T) {
	r := NewResolver(Indonesian)

	for _, in := range []string{"lalu", " 3 jam lalu", "beberapa jam lalu"} {
		_, err := r.Resolve(in, fixedNow)
		var perr *ParseError
		require.True(t, errors.As(err, &perr), in)
		assert.Equal(t, "invalid relative-date magnitude", perr.Reason)
		assert.Equal(t, in, perr.Input)
	}

	_, err := NewResolver(English).Resolve("ago", fixedNow)
	assert.Error(t, err)
}

func TestResolveUnknownUnit(t *testing.T) {
	r := NewResolver(Indonesian)

	got, err := r.Resolve("beberapa lalu tanpa satuan yang dikenal", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, Unknown, got)

	got, err = r.Resolve("5 lalu", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, Unknown, got)
}

func TestResolveIsPure(t *testing.T) {
	r := NewResolver(English)

	a, errA := r.Resolve("7 months ago", fixedNow)
	b, errB := r.Resolve("7 months ago", fixedNow)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestResolveNowUsesClock(t *testing.T) {
	r := NewResolver(English, WithClock(func() time.Time { return fixedNow }))

	got, err := r.ResolveNow("10 minutes ago")
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(-10*time.Minute).UnixMilli(), got)
}

func TestSubtractCalendarFields(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		unit Unit
		n    int
		want time.Time
	}{
		{
			name: "short month clamps",
			from: time.Date(2023, time.May, 31, 8, 0, 0, 0, time.UTC),
			unit: Months, n: 1,
			want: time.Date(2023, time.April, 30, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "february non leap",
			from: time.Date(2023, time.March, 31, 8, 0, 0, 0, time.UTC),
			unit: Months, n: 1,
			want: time.Date(2023, time.February, 28, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "across year",
			from: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			unit: Months, n: 13,
			want: time.Date(2022, time.December, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "leap day minus one year",
			from: time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC),
			unit: Years, n: 1,
			want: time.Date(2023, time.February, 28, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "leap day minus four years",
			from: time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC),
			unit: Years, n: 4,
			want: time.Date(2020, time.February, 29, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "days across leap day",
			from: time.Date(2024, time.March, 1, 6, 0, 0, 0, time.UTC),
			unit: Days, n: 1,
			want: time.Date(2024, time.February, 29, 6, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(Subtract(tt.from, tt.unit, tt.n)), "got %v", Subtract(tt.from, tt.unit, tt.n))
		})
	}
}

func TestLocaleByName(t *testing.T) {
	l, ok := LocaleByName("id")
	require.True(t, ok)
	assert.Equal(t, "lalu", l.Marker)

	_, ok = LocaleByName("fr")
	assert.False(t, ok)
}
