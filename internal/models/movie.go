package models

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Movie is one indexed post of the source channel.
type Movie struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Year      string      `json:"year"`
	Tags      string      `json:"tags"`
	MessageID int         `json:"message_id"`
	Media     ContentType `json:"media"`
	IndexedAt time.Time   `json:"indexed_at"`
}

// Label is the text shown on a search result button, e.g. "The Matrix (1999)".
func (m *Movie) Label() string {
	return fmt.Sprintf("%s (%s)", cases.Title(language.Und).String(m.Name), m.Year)
}

// Token is the callback data that selects this movie.
func (m *Movie) Token() string {
	return strconv.Itoa(m.MessageID)
}
