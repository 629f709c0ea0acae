package extract

import (
	"strings"

	"github.com/jonesrussell/goharvest/internal/domain"
)

// handlePrefix marks a token as a contributor handle.
const handlePrefix = "@"

// ParseCredits parses one credit entry per line of body. Tokens starting
// with '@' (after surrounding parentheses are stripped) become the
// handle; the remaining tokens joined with spaces become the display
// name. Lines yielding neither are skipped. Order is preserved.
func ParseCredits(body string) []domain.Credit {
	var credits []domain.Credit

	for _, line := range strings.Split(body, "\n") {
		var nameParts []string
		var handle string

		for _, token := range strings.Fields(line) {
			token = strings.Trim(token, "()")

			if strings.HasPrefix(token, handlePrefix) {
				handle = strings.TrimPrefix(token, handlePrefix)
				continue
			}

			if token != "" {
				nameParts = append(nameParts, token)
			}
		}

		name := strings.Join(nameParts, " ")
		if name == "" && handle == "" {
			continue
		}

		credits = append(credits, domain.Credit{Name: name, Handle: handle})
	}

	return credits
}
