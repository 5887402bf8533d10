package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDiacritics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"croatian letters", "čokolada ćup đumbir šećer žito", "cokolada cup djumbir secer zito"},
		{"uppercase croatian", "ČĆĐŠŽ", "CCDjSZ"},
		{"general accents", "café naïve jalapeño", "cafe naive jalapeno"},
		{"ascii untouched", "plain milk 1l", "plain milk 1l"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemoveDiacritics(tt.input))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Svježe Mlijeko", "svjeze mlijeko"},
		{"collapses whitespace", "  Kruh   bijeli \t 500g ", "kruh bijeli 500g"},
		{"combined", "ČOKOLADA  s   Lješnjakom", "cokolada s ljesnjakom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}
