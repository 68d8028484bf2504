package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "441 Martin Luther King Jr Drive, Atlanta", r.URL.Query().Get("q"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"lat": "33.755", "lon": "-84.401"}]`))
	}))
	defer server.Close()

	geocoder := NewNominatim(NominatimConfig{BaseURL: server.URL})
	lat, lon, err := geocoder.Locate(context.Background(), "441 Martin Luther King Jr Drive, Atlanta")
	require.NoError(t, err)
	assert.InDelta(t, 33.755, lat, 1e-9)
	assert.InDelta(t, -84.401, lon, 1e-9)
}

func TestLocateNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	geocoder := NewNominatim(NominatimConfig{BaseURL: server.URL})
	_, _, err := geocoder.Locate(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestLocateRequiresAddress(t *testing.T) {
	geocoder := NewNominatim(NominatimConfig{})
	_, _, err := geocoder.Locate(context.Background(), "   ")
	assert.Error(t, err)
}

func TestNormalizeZone(t *testing.T) {
	cases := map[string]string{
		"America/New_York":         "America/New_York",
		"US/Eastern":               "America/New_York",
		"EST":                      "America/New_York",
		"cdt":                      "America/Chicago",
		"Pacific Standard Time":    "America/Los_Angeles",
		"Mountain  Standard  Time": "America/Denver",
		"":                         "",
		"Europe/Dublin":            "Europe/Dublin",
		"Klingon Time":             "Klingon Time",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeZone(in), "input %q", in)
	}
}
