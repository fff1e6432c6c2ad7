package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPatternDetector(t *testing.T) {
	t.Run("invalid regex", func(t *testing.T) {
		_, err := NewPatternDetector("bad", `[unclosed`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to compile pattern")
	})

	t.Run("valid regex", func(t *testing.T) {
		d, err := NewPatternDetector("digits", `\d+`)
		require.NoError(t, err)
		assert.Equal(t, "digits", d.Name())
		assert.Equal(t, 1.0, d.Score("abc123"))
		assert.Equal(t, 0.0, d.Score("abc"))
	})
}

func TestUAEPhone(t *testing.T) {
	d := UAEPhone()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "empty string", text: "", want: 0},
		{name: "no contact info", text: "no contact info", want: 0},
		{name: "full international", text: "Call +971501234567", want: 1},
		{name: "without plus", text: "971 50 123 4567", want: 1},
		{name: "bare mobile", text: "contact 50 123 4567", want: 1},
		{name: "short number", text: "ext 5012", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Score(tt.text))
		})
	}
}

func TestEmail(t *testing.T) {
	d := Email()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "empty string", text: "", want: 0},
		{name: "plain text", text: "meet me at the marina", want: 0},
		{name: "simple address", text: "mail seller@example.com today", want: 1},
		{name: "dotted user", text: "first.last+tag@mail.co", want: 1},
		{name: "missing tld", text: "user@host", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Score(tt.text))
		})
	}
}

func TestSpamKeywords(t *testing.T) {
	k := SpamKeywords()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "empty string", text: "", want: 0},
		{name: "clean listing", text: "2BHK in JLT, ready to move", want: 0},
		{name: "single keyword", text: "URGENT sale today", want: 1},
		{name: "multiple keywords", text: "CHEAP! guaranteed, WhatsApp me, call now", want: 4},
		{name: "keyword inside word", text: "urgently needed", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Score(tt.text))
		})
	}
}
