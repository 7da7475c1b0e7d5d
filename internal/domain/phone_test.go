package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/softphone-backend/internal/domain"
)

func TestPhoneIndex(t *testing.T) {
	cases := []struct {
		name   string
		number string
		want   string
	}{
		{"formatted international", "+7 (495) 229-30-42", "4952293042"},
		{"eleven digits", "84952293042", "4952293042"},
		{"exactly ten digits", "4952293042", "4952293042"},
		{"short extension", "201", "201"},
		{"short with separators", "2-01", "201"},
		{"letters mixed in", "abc-123", "123"},
		{"letters after digits", "ext-9a", "9"},
		{"plus only kept for length", "+14952293042", "4952293042"},
		{"empty", "", ""},
		{"no digits at all", "anonymous", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.PhoneIndex(tc.number))
		})
	}
}
