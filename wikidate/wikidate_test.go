package wikidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/commons-repost/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		// Structured declarations
		{"duplicate year collapses", "1797 date QS:P571,+1797-00-00T00:00:00Z/9", "1797"},
		{"month precision hides day", "date QS:P571,1797-05-07T00:00:00Z/10", "May 1797"},
		{"day precision", "date QS:P571,+1797-05-07T00:00:00Z/11", "7 May 1797"},
		{"default precision is day", "date QS:P571,+1797-05-07", "7 May 1797"},
		{"bce shows year only", "date QS:P571,-1797-00-00T00:00:00Z/9", "1797 BCE"},
		{"bce ignores month and day", "date QS:P571,-44-03-15T00:00:00Z/11", "44 BCE"},
		{"zero month overrides month precision", "date QS:P571,+1797-00-00T00:00:00Z/10", "1797"},
		{"out of range month is a numeral", "date QS:P571,+1797-13-00T00:00:00Z/10", "13 1797"},
		{"text and structured differ", "circa 1797 date QS:P571,+1797-00-00T00:00:00Z/9", "circa 1797 1797"},
		{"iso text part equal to structured", "1797-05-07 date QS:P571,+1797-05-07T00:00:00Z/11", "7 May 1797"},
		{"precision coarser than a year keeps text", "between 1860 and 1880 date QS:P,+1850-00-00T00:00:00Z/7,P1319,+1860-00-00T00:00:00Z/9,P1326,+1880-00-00T00:00:00Z/9", "between 1860 and 1880"},
		{"declaration without year keeps text", "spring date QS:P571,unknown", "spring"},
		{"marker without comma keeps text", "spring date QS:P571", "spring"},
		{"declaration without year still reformats iso text", "2014-04-21 date QS:P571,unknown", "21 April 2014"},
		{"marker without comma still reformats iso text", "2014-04-21 date QS:P571", "21 April 2014"},
		{"padded year before 1000 collapses", "0800 date QS:P571,+0800-00-00T00:00:00Z/9", "0800"},
		{"padded year with month", "date QS:P571,+0800-03-00T00:00:00Z/10", "March 0800"},

		// Markup is stripped before splitting
		{"hidden span", `1797<span style="display:none">date QS:P571,+1797-00-00T00:00:00Z/9</span>`, "1797"},

		// Text only
		{"iso date", "2015-08-26", "26 August 2015"},
		{"exif datetime", "2014-04-21 11:54:46", "21 April 2014"},
		{"rfc3339", "2014-04-21T11:54:46Z", "21 April 2014"},
		{"invalid iso date stays verbatim", "2011-13-45", "2011-13-45"},
		{"iso prefix with trailing text stays verbatim", "2011-08-22  (upload date)", "2011-08-22 (upload date)"},
		{"year and month", "1851-05", "May 1851"},
		{"free text", "1851–52", "1851–52"},
		{"whitespace normalized", "  between\n1860  and 1880 ", "between 1860 and 1880"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestParseStructured(t *testing.T) {
	tests := []struct {
		in   string
		want StructuredDate
	}{
		{"+1797-00-00T00:00:00Z/9", StructuredDate{Year: 1797, YearText: "1797", Precision: 9}},
		{"-1797-00-00T00:00:00Z/9", StructuredDate{Negative: true, Year: 1797, YearText: "1797", Precision: 9}},
		{"1797-05-07T00:00:00Z/10", StructuredDate{Year: 1797, YearText: "1797", Month: 5, Day: 7, Precision: 10}},
		{"+2014-04-21", StructuredDate{Year: 2014, YearText: "2014", Month: 4, Day: 21, Precision: 11}},
		{"+800", StructuredDate{Year: 800, YearText: "800", Precision: 11}},
		{"+0800-00-00T00:00:00Z/9", StructuredDate{Year: 800, YearText: "0800", Precision: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStructured(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStructuredWithoutYear(t *testing.T) {
	for _, in := range []string{"", "+", "unknown", "T00:00:00Z/9"} {
		_, err := ParseStructured(in)
		assert.True(t, errors.Is(err, errors.ErrUnparseableDate), "input %q", in)
	}
}

// Day-level data is dropped whenever the month is unknown, even at day precision.
func TestStructuredDateDropsDayWithoutMonth(t *testing.T) {
	d := StructuredDate{Year: 1797, Day: 7, Precision: PrecisionDay}
	assert.Equal(t, "1797", d.String())
}

func TestStructuredDateString(t *testing.T) {
	assert.Equal(t, "", StructuredDate{Year: 1850, Precision: 7}.String())
	assert.Equal(t, "1797", StructuredDate{Year: 1797, Month: 5, Day: 7, Precision: PrecisionYear}.String())
	assert.Equal(t, "May 1797", StructuredDate{Year: 1797, Month: 5, Precision: PrecisionDay}.String())
	assert.Equal(t, "7 May 1797", StructuredDate{Year: 1797, Month: 5, Day: 7, Precision: 14}.String())
	assert.Equal(t, "0044 BCE", StructuredDate{Negative: true, Year: 44, YearText: "0044", Precision: PrecisionYear}.String())
}
