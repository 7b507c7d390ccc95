package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_SplitsOnNonWordRunes(t *testing.T) {
	got := Extract("go-redis streams, fast!")
	assert.Equal(t, []string{"go", "redis", "streams", "fast"}, got)
}

func TestExtract_Lowercases(t *testing.T) {
	got := Extract("Redis REDIS redis")
	assert.Equal(t, []string{"redis"}, got)
}

func TestExtract_DeduplicatesAcrossTexts(t *testing.T) {
	got := Extract("launch day", "day one launch")
	assert.Equal(t, []string{"launch", "day", "one"}, got)
}

func TestExtract_DropsShortTokens(t *testing.T) {
	got := Extract("a b go x1")
	assert.Equal(t, []string{"go", "x1"}, got)
}

func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("!!!", "  "))
}
