package catalog

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

const captionSeparator = "|"

var (
	ErrNoCaption        = goerr.New("post has no caption")
	ErrMalformedCaption = goerr.New("caption is not in 'name | year | tags' form")
)

// ParseCaption splits a "name | year | tags" caption. Name and tags are
// lowercased; year is kept as written. There is no escape for a literal '|'.
func ParseCaption(caption string) (name, year, tags string, err error) {
	if caption == "" {
		return "", "", "", ErrNoCaption
	}

	fields := strings.Split(caption, captionSeparator)
	if len(fields) != 3 {
		return "", "", "", goerr.Wrap(ErrMalformedCaption, "failed to parse caption",
			goerr.V("fields", len(fields)))
	}

	name = strings.ToLower(strings.TrimSpace(fields[0]))
	year = strings.TrimSpace(fields[1])
	tags = strings.ToLower(strings.TrimSpace(fields[2]))
	return name, year, tags, nil
}
