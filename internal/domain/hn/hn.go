// Package hn deriva los Hospital Numbers de las mascotas.
//
// Formato: "HN-" + primeros 4 caracteres del owner id en mayúsculas + "-" +
// contador con al menos 4 dígitos (HN-AB12-0007). Los contadores mayores a
// 9999 usan más dígitos; nunca se truncan.
package hn

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	Prefix       = "HN-"
	OwnerRunes   = 4
	CounterWidth = 4
)

var (
	ErrOwnerIDTooShort = errors.New("owner id must have at least 4 characters")
	ErrInvalidCounter  = errors.New("hn counter must be >= 0")
)

// Allocate calcula el siguiente HN para el owner a partir de su último contador.
// Es puro: persistir nextCounter es responsabilidad de quien llama.
func Allocate(ownerID string, lastCounter int64) (string, int64, error) {
	if lastCounter < 0 {
		return "", 0, ErrInvalidCounter
	}
	tag, err := OwnerTag(ownerID)
	if err != nil {
		return "", 0, err
	}
	next := lastCounter + 1
	return Format(tag, next), next, nil
}

// OwnerTag son los primeros 4 caracteres del owner id en mayúsculas.
func OwnerTag(ownerID string) (string, error) {
	ownerID = strings.TrimSpace(ownerID)
	if utf8.RuneCountInString(ownerID) < OwnerRunes {
		return "", ErrOwnerIDTooShort
	}
	runes := []rune(ownerID)
	return strings.ToUpper(string(runes[:OwnerRunes])), nil
}

func Format(tag string, counter int64) string {
	return fmt.Sprintf("%s%s-%0*d", Prefix, tag, CounterWidth, counter)
}

// Valid indica si s tiene la forma HN-XXXX-NNNN (4+ dígitos).
func Valid(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, Prefix) {
		return false
	}
	rest := strings.TrimPrefix(s, Prefix)
	tag, num, ok := strings.Cut(rest, "-")
	if !ok || utf8.RuneCountInString(tag) != OwnerRunes || len(num) < CounterWidth {
		return false
	}
	for _, r := range num {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalize limpia el HN que escribe un usuario (espacios, minúsculas).
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
