package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{
		"https://folio.example.com",
		"editor.example.com",
		"*.preview.example.com",
	}

	cases := []struct {
		name   string
		origin string
		want   bool
	}{
		{"full origin match", "https://folio.example.com", true},
		{"scheme mismatch on full origin", "http://folio.example.com", false},
		{"bare host ignores port", "https://editor.example.com:3000", true},
		{"bare host ignores scheme", "http://editor.example.com", true},
		{"wildcard subdomain", "https://pr-42.preview.example.com", true},
		{"wildcard apex", "https://preview.example.com", true},
		{"wildcard does not leak to lookalikes", "https://evilpreview.example.com", false},
		{"unlisted host", "https://attacker.example.org", false},
		{"empty origin", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, originAllowed(patterns, tc.origin))
		})
	}
}
