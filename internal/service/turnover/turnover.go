package turnover

import (
	"strconv"
	"strings"

	"github.com/ougirez/eracalc/internal/domain"
)

func thresholdOf(thresholds []domain.TradeThreshold, level int) (domain.TradeThreshold, bool) {
	for _, t := range thresholds {
		if t.Level == level {
			return t, true
		}
	}
	return domain.TradeThreshold{}, false
}

// ProgressPercent is the share of the way from the current level's threshold
// to the next one, clamped to [0, 100].
func ProgressPercent(level *domain.TradeLevel, thresholds []domain.TradeThreshold, turnover int64) float64 {
	if level == nil || len(thresholds) == 0 {
		return 0
	}

	var current int64
	if level.CurrentLevel > 0 {
		if t, ok := thresholdOf(thresholds, level.CurrentLevel); ok {
			current = t.Threshold
		}
	}

	next := level.Threshold
	if next <= current {
		return 100
	}

	percent := float64(turnover-current) / float64(next-current) * 100
	switch {
	case percent < 0:
		return 0
	case percent > 100:
		return 100
	}
	return percent
}

func LevelName(level *domain.TradeLevel, thresholds []domain.TradeThreshold) string {
	if level == nil || len(thresholds) == 0 {
		return ""
	}

	t, _ := thresholdOf(thresholds, level.CurrentLevel)
	return t.Name
}

// FormatTurnover groups thousands with spaces: 1234567 -> "1 234 567".
func FormatTurnover(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var sb strings.Builder
	sb.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
