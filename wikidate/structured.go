package wikidate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/teranos/commons-repost/errors"
)

// Wikidata time precision values
const (
	PrecisionYear  = 9
	PrecisionMonth = 10
	PrecisionDay   = 11
)

// StructuredDate is a parsed "date QS:" declaration.
// Month and Day are 0 when unknown; zero fields are never rendered.
// YearText keeps the year as written, zero padding included ("0800").
type StructuredDate struct {
	Negative  bool
	Year      int
	YearText  string
	Month     int
	Day       int
	Precision int
}

// sign, year, month, day, time (ignored), precision
var structuredPattern = regexp.MustCompile(`^([+-])?(\d{1,4})(?:-(\d{1,2}))?(?:-(\d{1,2}))?(?:T\d{2}:\d{2}:\d{2}Z?)?(?:/(\d{1,2}))?`)

// ParseStructured parses the declaration that follows the "date QS:<property>,"
// marker, e.g. "+1797-05-07T00:00:00Z/10".
func ParseStructured(s string) (StructuredDate, error) {
	s = strings.TrimSpace(s)

	m := structuredPattern.FindStringSubmatch(s)
	if m == nil || m[2] == "" {
		return StructuredDate{}, errors.Wrapf(errors.ErrUnparseableDate, "no year in %q", s)
	}

	d := StructuredDate{
		Negative:  m[1] == "-",
		Year:      atoi(m[2]),
		YearText:  m[2],
		Month:     atoi(m[3]),
		Day:       atoi(m[4]),
		Precision: PrecisionDay,
	}
	if m[5] != "" {
		d.Precision = atoi(m[5])
	}
	return d, nil
}

// String renders the date at its precision: "1797", "May 1797",
// "7 May 1797" or "1797 BCE". Precisions coarser than a year render empty.
func (d StructuredDate) String() string {
	if d.Precision < PrecisionYear {
		return ""
	}

	year := d.YearText
	if year == "" {
		year = strconv.Itoa(d.Year)
	}
	if d.Negative {
		return year + " BCE"
	}

	// Day is only meaningful inside a known month
	parts := []string{year}
	if d.Month != 0 {
		parts = append(parts, monthName(d.Month))
		if d.Day != 0 {
			parts = append(parts, strconv.Itoa(d.Day))
		}
	}

	if keep := d.Precision - PrecisionYear + 1; keep < len(parts) {
		parts = parts[:keep]
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}

var months = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// monthName returns the English month name, or the numeral when out of range.
func monthName(mm int) string {
	if mm >= 1 && mm <= len(months) {
		return months[mm-1]
	}
	return strconv.Itoa(mm)
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
