package vetfinder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchURL(t *testing.T) {
	u, err := SearchURL(" Chiang Mai ")
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/maps/search/สัตวแพทย์ใกล้ฉัน+Chiang%20Mai", u)

	u, err = SearchURL("a&b/c (old)")
	require.NoError(t, err)
	assert.Equal(t, searchBase+"a%26b%2Fc%20(old)", u)

	u, err = SearchURL("บางนา")
	require.NoError(t, err)
	assert.Equal(t, searchBase+"%E0%B8%9A%E0%B8%B2%E0%B8%87%E0%B8%99%E0%B8%B2", u)

	_, err = SearchURL("   ")
	assert.ErrorIs(t, err, ErrEmptyLocation)
}

func TestNearbyHandler(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vets/nearby?location=Bangkok", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body nearbyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, searchBase+"Bangkok", body.URL)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vets/nearby", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a location to search.")
}
