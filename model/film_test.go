package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGenre(t *testing.T) {
	assert.Equal(t, GenreComedy, NormalizeGenre("comedy"))
	assert.Equal(t, GenreComedy, NormalizeGenre("Comedy"))
	assert.Equal(t, GenreScifi, NormalizeGenre("scifi"))
	assert.Equal(t, Genre(""), NormalizeGenre(""))

	// only the first rune is touched
	assert.Equal(t, Genre("CoMeDy"), NormalizeGenre("coMeDy"))
}

func TestIsValidGenre(t *testing.T) {
	for _, genre := range Genres {
		assert.True(t, IsValidGenre(genre), "genre %s should be valid", genre)
	}

	assert.False(t, IsValidGenre("Western"))
	assert.False(t, IsValidGenre("comedy"))
	assert.False(t, IsValidGenre(""))
}
