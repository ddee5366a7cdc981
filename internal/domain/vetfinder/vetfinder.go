// Package vetfinder arma el enlace de búsqueda de veterinarios cercanos.
package vetfinder

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const searchBase = "https://www.google.com/maps/search/สัตวแพทย์ใกล้ฉัน+"

var ErrEmptyLocation = errors.New("location is required")

// SearchURL devuelve la búsqueda de mapas para la ubicación dada. La
// ubicación se codifica como componente de URI.
func SearchURL(location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", ErrEmptyLocation
	}
	return searchBase + encodeComponent(location), nil
}

func encodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func RegisterRoutes(r chi.Router) {
	r.Get("/vets/nearby", nearbyHandler())
}

type nearbyResponse struct {
	Location string `json:"location"`
	URL      string `json:"url"`
	Message  string `json:"message"`
}

// nearbyHandler godoc
// @Summary Buscar veterinarios cercanos
// @Description Devuelve el enlace de Google Maps para buscar veterinarios cerca de la ubicación.
// @Tags vets
// @Produce json
// @Param location query string true "Ciudad, barrio o dirección"
// @Success 200 {object} nearbyResponse
// @Failure 400 {string} string "ubicación requerida"
// @Router /vets/nearby [get]
func nearbyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location := r.URL.Query().Get("location")
		u, err := SearchURL(location)
		if err != nil {
			http.Error(w, "กรุณากรอกตำแหน่งเพื่อค้นหา / Please enter a location to search.", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(nearbyResponse{
			Location: strings.TrimSpace(location),
			URL:      u,
			Message:  "กำลังเปิด Google Maps... / Opening Google Maps...",
		})
	}
}
