// Package normalize canonicalizes locale-formatted invoice values so that
// document-derived and DJP-derived fields compare under exact equality.
// Every function is pure and total: malformed input yields a miss value,
// never a panic or an error.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	nonDigitRe    = regexp.MustCompile(`\D`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	legalPrefixRe = regexp.MustCompile(`^(CV|PT)[\s.]*`)
	genericDateRe = regexp.MustCompile(`^(\d{2})[/-](\d{2})[/-](\d{4})$`)
)

// indonesianMonths maps lower-cased Indonesian month names to month numbers.
var indonesianMonths = map[string]time.Month{
	"januari":   time.January,
	"februari":  time.February,
	"maret":     time.March,
	"april":     time.April,
	"mei":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"agustus":   time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"desember":  time.December,
}

// Digits strips every non-digit character. Returns "" when no digits remain.
func Digits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// CompanyName canonicalizes a company name: periods removed, whitespace
// collapsed, upper-cased, and a leading CV/PT legal-entity prefix rewritten
// onto the single "<PREFIX> <REST>" form. "PT. MAJU BERSAMA", "PT.MAJU
// BERSAMA" and "PT MAJU BERSAMA" all canonicalize identically.
func CompanyName(s string) string {
	s = strings.ReplaceAll(s, ".", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.ToUpper(strings.TrimSpace(s))

	if m := legalPrefixRe.FindStringSubmatch(s); m != nil {
		rest := strings.TrimSpace(s[len(m[0]):])
		if rest == "" {
			return m[1]
		}
		return m[1] + " " + rest
	}
	return s
}

// CurrencyAmount parses an Indonesian-formatted amount ("36.364.855,00")
// into a float. "." is a thousands separator and "," the decimal separator.
// Returns 0.0 on any parse failure or negative value: the absent-amount
// policy deliberately conflates "unparsable" with "zero".
func CurrencyAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}

	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0.0
	}
	return v
}

// IndonesianDate parses a "D MonthName YYYY" token ("17 Agustus 1945") into
// a UTC calendar date. Unknown month names or out-of-range components are a
// miss, not an error.
func IndonesianDate(s string) (time.Time, bool) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := indonesianMonths[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}

	return calendarDate(year, month, day)
}

// GenericDate parses a DD/MM/YYYY or DD-MM-YYYY date (the DJP reference
// format). Other shapes are a miss.
func GenericDate(s string) (time.Time, bool) {
	m := genericDateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	return calendarDate(year, time.Month(month), day)
}

// calendarDate builds a date and rejects components that time.Date would
// silently roll over (e.g. 32 Januari becoming 1 Februari).
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	if year < 1 || month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
