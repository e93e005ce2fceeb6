package commons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/commons-repost/attribution"
	"github.com/teranos/commons-repost/errors"
)

func loadImageInfo(t *testing.T, name string) ImageInfo {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name+".json"))
	require.NoError(t, err)

	info, err := ParseImageInfo(data)
	require.NoError(t, err)
	return info
}

func TestParseImageInfo(t *testing.T) {
	info := loadImageInfo(t, "iss-view-of-earth")

	assert.Equal(t, "File:ISS039-E-14528 - View of Earth.jpg", info.Title)
	assert.Equal(t, "ISS039-E-14528 - View of Earth.jpg", info.FileName)
	assert.Equal(t, 1210772, info.Size)
	assert.Equal(t, 3000, info.Width)
	assert.Equal(t, 2000, info.Height)
	assert.Equal(t, "image/jpeg", info.MIMEType)
	assert.Equal(t, "Public domain", info.Metadata[KeyLicenseShortName])
	assert.NoError(t, info.Validate())
}

func TestParseImageInfoPagesKeyedByID(t *testing.T) {
	info := loadImageInfo(t, "museum-rotterdam")

	assert.Equal(t, "Tinnen figuur, trompettist te paard.jpg", info.FileName)
	assert.Equal(t, 1024, info.Width)
	assert.NoError(t, info.Validate())
}

func TestAttribution(t *testing.T) {
	tests := []struct {
		fixture string
		want    attribution.Source
	}{
		{
			fixture: "iss-view-of-earth",
			want: attribution.Source{
				Author:    "Earth Science and Remote Sensing Unit, Lyndon B. Johnson Space Center",
				Date:      "21 April 2014",
				Licence:   "Public domain",
				SourceURL: "https://commons.wikimedia.org/wiki/File:ISS039-E-14528_-_View_of_Earth.jpg",
			},
		},
		{
			fixture: "museum-rotterdam",
			want: attribution.Source{
				Author:     "Allgeyer",
				Date:       "between 1860 and 1880",
				Licence:    "CC BY-SA 3.0 nl",
				LicenceURL: "https://creativecommons.org/licenses/by-sa/3.0/nl/deed.en",
				SourceURL:  "https://commons.wikimedia.org/wiki/File:Tinnen_figuur,_trompettist_te_paard.jpg",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			got, err := loadImageInfo(t, tt.fixture).Attribution()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Attribution() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttributionDateFallsBackToDateTime(t *testing.T) {
	info := ImageInfo{
		DescriptionURL: "https://commons.wikimedia.org/wiki/File:Example.jpg",
		Metadata:       map[string]string{KeyDateTime: "2015-08-26 09:00:00"},
	}

	src, err := info.Attribution()
	require.NoError(t, err)
	assert.Equal(t, "26 August 2015", src.Date)
}

func TestAttributionRejectsMissingSource(t *testing.T) {
	_, err := ImageInfo{}.Attribution()
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		info ImageInfo
		want string
	}{
		{
			name: "description only",
			info: loadImageInfo(t, "iss-view-of-earth"),
			want: "View of Earth taken during ISS Expedition 39.",
		},
		{
			name: "object name and sanitized description",
			info: loadImageInfo(t, "museum-rotterdam"),
			want: "Tinnen figuur, trompettist te paard – Objectgegevens Titel: Tinnen figuur Datering: 1860 - 1880",
		},
		{
			name: "object name only",
			info: ImageInfo{Metadata: map[string]string{KeyObjectName: "Chapelle des Pénitents blancs"}},
			want: "Chapelle des Pénitents blancs",
		},
		{
			name: "falls back to file name",
			info: ImageInfo{FileName: "Example.jpg", Metadata: map[string]string{}},
			want: "Example.jpg",
		},
		{
			name: "markup only counts as absent",
			info: ImageInfo{FileName: "Example.jpg", Metadata: map[string]string{KeyImageDescription: "<style>p{}</style>"}},
			want: "Example.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Description())
		})
	}
}

func TestParseImageInfoRejectsNonUnique(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"invalid json", `{"query":`},
		{"no pages", `{"query":{"pages":[]}}`},
		{"two pages", `{"query":{"pages":[{"imageinfo":[{}]},{"imageinfo":[{}]}]}}`},
		{"no info", `{"query":{"pages":[{"title":"File:A.jpg","imageinfo":[]}]}}`},
		{"two infos", `{"query":{"pages":[{"title":"File:A.jpg","imageinfo":[{},{}]}]}}`},
		{"missing page", `{"query":{"pages":[{"title":"File:A.jpg","missing":true}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseImageInfo([]byte(tt.json))
			assert.True(t, errors.IsInvalidRequestError(err), "got %v", err)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := ImageInfo{
		Size:           MaxSourceBytes,
		URL:            "https://upload.wikimedia.org/a.png",
		DescriptionURL: "https://commons.wikimedia.org/wiki/File:A.png",
		MIMEType:       "image/png",
	}
	assert.NoError(t, valid.Validate())

	tooLarge := valid
	tooLarge.Size = MaxSourceBytes + 1
	assert.True(t, errors.Is(tooLarge.Validate(), errors.ErrUnsupportedMedia))

	svg := valid
	svg.MIMEType = "image/svg+xml"
	assert.True(t, errors.Is(svg.Validate(), errors.ErrUnsupportedMedia))

	noURL := valid
	noURL.URL = ""
	assert.True(t, errors.IsInvalidRequestError(noURL.Validate()))
}

func TestValidateLimits(t *testing.T) {
	info := ImageInfo{
		Size:           2 << 20,
		URL:            "https://upload.wikimedia.org/a.webp",
		DescriptionURL: "https://commons.wikimedia.org/wiki/File:A.webp",
		MIMEType:       "image/webp",
	}

	assert.True(t, errors.Is(info.Validate(), errors.ErrUnsupportedMedia))

	webp := Limits{MediaTypes: []string{"image/webp"}}
	assert.NoError(t, info.ValidateLimits(webp))

	small := Limits{MaxSourceBytes: 1 << 20, MediaTypes: []string{"image/webp"}}
	assert.True(t, errors.Is(info.ValidateLimits(small), errors.ErrUnsupportedMedia))

	assert.Equal(t, DefaultLimits(), Limits{}.withDefaults())
}

func TestCheckMediaType(t *testing.T) {
	assert.NoError(t, CheckMediaType("image/jpeg"))
	assert.NoError(t, CheckMediaType("image/gif"))
	assert.NoError(t, CheckMediaType("IMAGE/PNG; charset=binary"))
	assert.Error(t, CheckMediaType("image/webp"))
	assert.Error(t, CheckMediaType(""))
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://commons.wikimedia.org/wiki/File:Example.jpg", "https://commons.wikimedia.org/wiki/File:Example.jpg"},
		{"http://commons.wikimedia.org/wiki/File:Example.jpg", "https://commons.wikimedia.org/wiki/File:Example.jpg"},
		{"//creativecommons.org/licenses/by/4.0", "https://creativecommons.org/licenses/by/4.0"},
		{"https://commons.wikimedia.org/wiki/File:Café de Flore.jpg", "https://commons.wikimedia.org/wiki/File:Caf%C3%A9%20de%20Flore.jpg"},
		{"https://commons.wikimedia.org/wiki/File:Caf%C3%A9.jpg", "https://commons.wikimedia.org/wiki/File:Caf%C3%A9.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "mailto:someone@example.org", "https://", "ftp://example.org/a"} {
		_, err := NormalizeURL(bad)
		assert.True(t, errors.IsInvalidRequestError(err), "input %q", bad)
	}
}
