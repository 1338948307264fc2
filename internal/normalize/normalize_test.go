package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases and strips punctuation",
			input: "AIRBNB * HMROAS92K1 PAYMENT",
			want:  "airbnb hmroas92k1 payment",
		},
		{
			name:  "collapses internal whitespace",
			input: "uber   \t  trip\n\nsf",
			want:  "uber trip sf",
		},
		{
			name:  "trims leading and trailing whitespace",
			input: "  starbucks coffee  ",
			want:  "starbucks coffee",
		},
		{
			name:  "keeps digits",
			input: "CHECK #1042",
			want:  "check 1042",
		},
		{
			name:  "strips non-ascii letters",
			input: "Café Zürich",
			want:  "caf zrich",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "punctuation only",
			input: "*** --- !!!",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   \t\n ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"AIRBNB * HMROAS92K1 PAYMENT",
		"  spaced   out  ",
		"already normalized",
		"",
		"123 456",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", input)
	}
}

func TestNormalize_VariantsCollide(t *testing.T) {
	variants := []string{
		"AIRBNB * HMROAS92K1 PAYMENT",
		"Airbnb * HMROAS92K1 Payment",
		"  airbnb * hmroas92k1 payment  ",
	}

	want := Normalize(variants[0])
	for _, v := range variants {
		assert.Equal(t, want, Normalize(v))
	}
}

func TestKey(t *testing.T) {
	// The key is an opaque stable identifier; assert behavior, not digests.
	assert.Equal(t, Key("starbucks coffee"), Key("starbucks coffee"))
	assert.NotEqual(t, Key("starbucks coffee"), Key("starbucks tea"))
	assert.Len(t, Key("anything"), 64)
	assert.NotEmpty(t, Key(""))
}
