package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	known := []string{"yesno", "onoff", "yes", "bool01"}

	ranked := Rank("yesn", known)
	if assert.Len(t, ranked, 2) {
		assert.Equal(t, "yesno", ranked[0].Name)
		assert.Equal(t, "yes", ranked[1].Name)
		assert.InDelta(t, 0.8, ranked[0].Score, 0.001)
		assert.InDelta(t, 0.75, ranked[1].Score, 0.001)
	}

	assert.Empty(t, Rank("datetime", known))
	assert.Empty(t, Rank("yesno", []string{"yesno"}))
}

func TestRank_TiesAreAlphabetical(t *testing.T) {
	ranked := Rank("cat", []string{"cut", "bat", "car"})

	names := make([]string, 0, len(ranked))
	for _, c := range ranked {
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"bat", "car", "cut"}, names)
}

func TestRank_CaseOnlyDifference(t *testing.T) {
	ranked := Rank("YESNO", []string{"yesno"})
	if assert.Len(t, ranked, 1) {
		assert.Equal(t, 1.0, ranked[0].Score)
	}
}

func TestClosest(t *testing.T) {
	best, ok := Closest("xmlbind-generator/examples/rss.Thumbnial", []string{
		"xmlbind-generator/examples/rss.Thumbnail",
		"xmlbind-generator/examples/rss.Content",
	})
	assert.True(t, ok)
	assert.Equal(t, "xmlbind-generator/examples/rss.Thumbnail", best)

	_, ok = Closest("zzz", nil)
	assert.False(t, ok)
}

func TestDidYouMean(t *testing.T) {
	assert.Equal(t, ` (did you mean "yesno"?)`, DidYouMean("yesn", []string{"yesno", "onoff"}))
	assert.Empty(t, DidYouMean("datetime", []string{"yesno"}))
}
