package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Field names a TeamProfile attribute a column can feed
type Field string

const (
	FieldName          Field = "name"
	FieldPPG           Field = "ppg"
	FieldPointsAllowed Field = "pointsAllowed"
	FieldDefenseRank   Field = "defenseRank"
	FieldFGPct         Field = "fgPct"
	FieldThreePct      Field = "threePct"
	FieldFTPct         Field = "ftPct"
	FieldOffenseRank   Field = "offenseRank"
	FieldStrengthRank  Field = "strengthRank"
	FieldHomeRecord    Field = "homeRecord"
	FieldAwayRecord    Field = "awayRecord"
	FieldNeutralRecord Field = "neutralRecord"
	FieldStreak        Field = "streak"
	FieldWinStreak     Field = "winStreak"
	FieldLossStreak    Field = "lossStreak"
	FieldLast5PPG      Field = "last5Ppg"
	FieldFirstHalfPPG  Field = "firstHalfPpg"
)

// headerAliases is keyed by normalised header text, see NormalizeHeader
var headerAliases = map[string]Field{
	"team": FieldName, "teamname": FieldName, "school": FieldName, "name": FieldName, "club": FieldName,

	"ppg": FieldPPG, "pts": FieldPPG, "ptsg": FieldPPG, "ptspg": FieldPPG, "pointspergame": FieldPPG,
	"points": FieldPPG, "scoring": FieldPPG, "scoringoffense": FieldPPG, "offppg": FieldPPG,

	"pa": FieldPointsAllowed, "pag": FieldPointsAllowed, "papg": FieldPointsAllowed, "oppg": FieldPointsAllowed,
	"oppppg": FieldPointsAllowed, "opppts": FieldPointsAllowed, "oppptsg": FieldPointsAllowed,
	"pointsallowed": FieldPointsAllowed, "pointsallowedpergame": FieldPointsAllowed, "allowed": FieldPointsAllowed,
	"scoringdefense": FieldPointsAllowed, "defppg": FieldPointsAllowed,

	"defrank": FieldDefenseRank, "defrk": FieldDefenseRank, "drank": FieldDefenseRank, "defenserank": FieldDefenseRank,
	"defensiverank": FieldDefenseRank, "scoringdefenserank": FieldDefenseRank, "parank": FieldDefenseRank,

	"fgpct": FieldFGPct, "fieldgoalpct": FieldFGPct, "fieldgoalpercentage": FieldFGPct, "fgpercentage": FieldFGPct,

	"3ppct": FieldThreePct, "3ptpct": FieldThreePct, "3fgpct": FieldThreePct, "3pfgpct": FieldThreePct,
	"threepointpct": FieldThreePct, "threepointpercentage": FieldThreePct, "3pointpct": FieldThreePct,

	"ftpct": FieldFTPct, "freethrowpct": FieldFTPct, "freethrowpercentage": FieldFTPct,

	"offrank": FieldOffenseRank, "offrk": FieldOffenseRank, "orank": FieldOffenseRank, "offenserank": FieldOffenseRank,
	"offensiverank": FieldOffenseRank, "scoringoffenserank": FieldOffenseRank, "ppgrank": FieldOffenseRank,

	"net": FieldStrengthRank, "netrank": FieldStrengthRank, "netranking": FieldStrengthRank, "strengthrank": FieldStrengthRank,
	"powerrank": FieldStrengthRank, "overallrank": FieldStrengthRank, "rpi": FieldStrengthRank,

	"home": FieldHomeRecord, "homerecord": FieldHomeRecord, "homewl": FieldHomeRecord,
	"away": FieldAwayRecord, "road": FieldAwayRecord, "awayrecord": FieldAwayRecord, "roadrecord": FieldAwayRecord,
	"awaywl": FieldAwayRecord, "roadwl": FieldAwayRecord,
	"neutral": FieldNeutralRecord, "neut": FieldNeutralRecord, "neutralrecord": FieldNeutralRecord,
	"neutralsite": FieldNeutralRecord, "neutralwl": FieldNeutralRecord,

	"streak": FieldStreak, "strk": FieldStreak, "currentstreak": FieldStreak,
	"winstreak": FieldWinStreak, "winningstreak": FieldWinStreak,
	"lossstreak": FieldLossStreak, "losingstreak": FieldLossStreak,

	"last5ppg": FieldLast5PPG, "l5ppg": FieldLast5PPG, "last5": FieldLast5PPG, "l5": FieldLast5PPG,
	"last5games": FieldLast5PPG, "recentppg": FieldLast5PPG, "last5avg": FieldLast5PPG,

	"1hppg": FieldFirstHalfPPG, "1sthalfppg": FieldFirstHalfPPG, "firsthalfppg": FieldFirstHalfPPG,
	"1hpts": FieldFirstHalfPPG, "fhppg": FieldFirstHalfPPG, "firsthalf": FieldFirstHalfPPG,
}

// minPrefixAlias is the shortest alias allowed to match as a prefix, shorter ones
// ("pa", "ppg") would swallow unrelated headers
const minPrefixAlias = 5

// NormalizeHeader strips diacritics and punctuation and lower cases, "%" becomes "pct"
func NormalizeHeader(s string) string {
	s = strings.ToLower(stripDiacritics(s))
	s = strings.ReplaceAll(s, "%", "pct")
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveHeader maps a raw column header to a field. Exact aliases win, otherwise
// the longest alias the header starts with ("Points Per Game (2025)").
func ResolveHeader(header string) (Field, bool) {
	key := NormalizeHeader(header)
	if key == "" {
		return "", false
	}
	if f, ok := headerAliases[key]; ok {
		return f, true
	}
	var best string
	for alias := range headerAliases {
		if len(alias) >= minPrefixAlias && len(alias) > len(best) && strings.HasPrefix(key, alias) {
			best = alias
		}
	}
	if best == "" {
		return "", false
	}
	return headerAliases[best], true
}

// resolveColumns maps column index to field, the first column claiming a field keeps it
func resolveColumns(headers []string) (map[int]Field, map[string]string) {
	byIndex := make(map[int]Field)
	columns := make(map[string]string)
	claimed := make(map[Field]bool)
	for i, h := range headers {
		f, ok := ResolveHeader(h)
		if !ok || claimed[f] {
			continue
		}
		claimed[f] = true
		byIndex[i] = f
		columns[strings.TrimSpace(h)] = string(f)
	}
	return byIndex, columns
}

// NormalizeName gives the lookup key for a team name: no diacritics or punctuation,
// lower case, single spaces
func NormalizeName(s string) string {
	s = strings.ToLower(stripDiacritics(s))
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case r == '&':
			return r
		case r == '\'' || r == '.' || r == '’':
			return -1
		default:
			return ' '
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
