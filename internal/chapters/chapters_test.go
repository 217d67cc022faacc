package chapters

import (
	"testing"

	"github.com/brogergvhs/komikd/internal/providers"
	"github.com/stretchr/testify/assert"
)

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		title string
		want  float64
		ok    bool
	}{
		{"Chapter 42", 42, true},
		{"Chapter 42.5", 42, true},
		{"Chapter  007 - Kembali", 7, true},
		{"Vol. 2 Chapter 9 Chapter 10", 9, true},
		{"Chapter\t3", 3, true},
		{"Bonus Story", 0, false},
		{"chapter 5", 0, false},
		{"Chapter", 0, false},
		{"Chapter five", 0, false},
		{"Bab 12.5 - Special", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := ExtractNumber(tt.title)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyNumberIsNonDestructive(t *testing.T) {
	c := providers.NewChapter()
	c.Name = "Side Story"
	ApplyNumber(&c)
	assert.Equal(t, float64(providers.UnsetNumber), c.Number)

	c.Number = 11
	ApplyNumber(&c)
	assert.Equal(t, float64(11), c.Number)

	c.Name = "Chapter 12"
	ApplyNumber(&c)
	assert.Equal(t, float64(12), c.Number)
}

func sample() []Chapter {
	mk := func(name string, n float64) providers.Chapter {
		c := providers.NewChapter()
		c.Name = name
		c.Number = n
		return c
	}

	// newest first, the way the site lists them
	return Wrap([]providers.Chapter{
		mk("Chapter 4", 4),
		mk("Special: Beach Episode", providers.UnsetNumber),
		mk("Chapter 2", 2),
		mk("Chapter 1", 1),
	})
}

func TestWrapOrdersOldestFirst(t *testing.T) {
	all := sample()

	labels := make([]string, len(all))
	for i, c := range all {
		labels[i] = c.Label
	}
	assert.Equal(t, []string{"1", "2", "special_beach_episode", "4"}, labels)
}

func TestFilter(t *testing.T) {
	all := sample()

	assert.Len(t, Filter(all, "", "", ""), 4)
	assert.Equal(t, "4", Filter(all, "4", "", "")[0].Label)
	assert.Equal(t, "special_beach_episode", Filter(all, "3", "", "")[0].Label)
	assert.Empty(t, Filter(all, "9", "", ""))

	rng := Filter(all, "", "2-3", "")
	assert.Len(t, rng, 2)
	assert.Equal(t, "2", rng[0].Label)

	assert.Nil(t, Filter(all, "", "3-2", ""))
	assert.Nil(t, Filter(all, "", "1-9", ""))

	list := Filter(all, "", "", "1, 4,x,7")
	assert.Len(t, list, 2)
	assert.Equal(t, "4", list[1].Label)
}

func TestOutputNames(t *testing.T) {
	all := sample()

	assert.Equal(t, "1_chapter_1.cbz", all[0].OutputCBZ())
	assert.Equal(t, "special_beach_episode_tmp", all[2].FolderName())
	assert.Equal(t, "out/4_chapter_4.cbz", all[3].OutputCBZPath("out"))
}
