package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/richard-senior/hoops/pkg/hoops"
)

var (
	recordPattern = regexp.MustCompile(`(\d+)\s*[-\x{2013}\x{2014}]\s*(\d+)`)
	streakPattern = regexp.MustCompile(`(?i)^(w|l|won|lost|win|loss)\s*(\d+)$`)
	rankPattern   = regexp.MustCompile(`^(?i:t-?)?#?\s*(\d+)(?i:st|nd|rd|th)?$`)
	seedPattern   = regexp.MustCompile(`\s*\(\s*[\d\s-]+\)\s*$`)
	leadRankName  = regexp.MustCompile(`^(#?\d+\.?\s+)`)
)

// blank reports whether a cell holds no value
func blank(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "-", "--", "—", "–", "n/a", "na", "null", "none":
		return true
	}
	return false
}

// ParseNumber reads "1,234.5", "48.2%" or "+3" as a float
func ParseNumber(s string) (float64, error) {
	if blank(s) {
		return 0, fmt.Errorf("empty")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// ParsePercent returns a 0..1 fraction. "48.2%", "48.2" and ".482" all give 0.482.
func ParsePercent(s string) (float64, error) {
	v, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if strings.Contains(s, "%") || v > 1 {
		v /= 100
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("percentage %q out of range", s)
	}
	return v, nil
}

// ParseRank reads "12", "#12", "T-12" or "12th"
func ParseRank(s string) (int, error) {
	m := rankPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("not a rank: %q", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, err
	}
	if n < 1 || n > hoops.LeagueSize {
		return 0, fmt.Errorf("rank %d outside 1..%d", n, hoops.LeagueSize)
	}
	return n, nil
}

// ParseRecord reads a win-loss split such as "12-3" or "(12–3)"
func ParseRecord(s string) (hoops.Record, error) {
	m := recordPattern.FindStringSubmatch(s)
	if m == nil {
		return hoops.Record{}, fmt.Errorf("not a record: %q", s)
	}
	w, _ := strconv.Atoi(m[1])
	l, _ := strconv.Atoi(m[2])
	return hoops.Record{Wins: w, Losses: l}, nil
}

// ParseStreak reads "W4", "L 2", "Won 3" or a signed count ("+4", "-2").
// It returns the win streak and loss streak, at most one nonzero.
func ParseStreak(s string) (win, loss int, err error) {
	s = strings.TrimSpace(s)
	if m := streakPattern.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[2])
		if strings.HasPrefix(strings.ToLower(m[1]), "w") {
			return n, 0, nil
		}
		return 0, n, nil
	}
	n, perr := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if perr != nil {
		return 0, 0, fmt.Errorf("not a streak: %q", s)
	}
	if n >= 0 {
		return n, 0, nil
	}
	return 0, -n, nil
}

// CleanTeamName drops ranking prefixes ("#4 ", "12. ") and trailing seeds or records
// in brackets
func CleanTeamName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = seedPattern.ReplaceAllString(s, "")
	s = leadRankName.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
