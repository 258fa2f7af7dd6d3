package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/constants"
)

// ParseResourceCounts parses "wood=7,plank=3" into a resource vector.
// Used by the CLI flags.
func ParseResourceCounts(s string) ([]domain.ResourceCount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	res := make([]domain.ResourceCount, 0, len(parts))
	for _, part := range parts {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
			return nil, fmt.Errorf("bad resource pair %q: %w", part, constants.ErrInvalidArgument)
		}

		count, err := strconv.ParseInt(strings.TrimSpace(kv[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad count in %q: %w", part, constants.ErrInvalidArgument)
		}

		res = append(res, domain.ResourceCount{
			Identificator: strings.TrimSpace(kv[0]),
			Count:         count,
		})
	}

	return res, nil
}
