package export

import (
	"fmt"
	"net/url"

	"github.com/jmylchreest/swatch/internal/colour"
)

// ShareParam is the query parameter carrying a shared colour list.
const ShareParam = "colors"

// ShareURL appends the palette's colour list to base as ?colors=.
func ShareURL(base string, p colour.Palette) (string, error) {
	if p.IsEmpty() {
		return "", fmt.Errorf("%w: cannot share an empty palette", colour.ErrInvalidInput)
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("failed to parse share URL %q: %w", base, err)
	}

	q := u.Query()
	q.Set(ShareParam, colour.ShareList(p))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseShareURL extracts the colour list from a share URL.
func ParseShareURL(raw string) ([]string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse share URL %q: %w", raw, err)
	}
	list := u.Query().Get(ShareParam)
	if list == "" {
		return nil, fmt.Errorf("%w: share URL has no %s parameter", colour.ErrInvalidInput, ShareParam)
	}
	return colour.ParseShareList(list), nil
}
