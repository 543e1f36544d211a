package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieLabel(t *testing.T) {
	tests := []struct {
		name  string
		movie Movie
		want  string
	}{
		{"two words", Movie{Name: "the matrix", Year: "1999"}, "The Matrix (1999)"},
		{"single word", Movie{Name: "alien", Year: "1979"}, "Alien (1979)"},
		{"empty year", Movie{Name: "heat", Year: ""}, "Heat ()"},
		{"non numeric year", Movie{Name: "up", Year: "soon"}, "Up (soon)"},
		{"possessive", Movie{Name: "ocean's eleven", Year: "2001"}, "Ocean's Eleven (2001)"},
		{"apostrophe in name", Movie{Name: "o'brien", Year: "1999"}, "O'brien (1999)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.movie.Label())
		})
	}
}

func TestMovieToken(t *testing.T) {
	m := Movie{MessageID: 4242}
	assert.Equal(t, "4242", m.Token())
}
