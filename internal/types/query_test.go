package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSearchQuery_Defaults(t *testing.T) {
	q := NewSearchQuery("", "", nil)

	assert.Equal(t, DefaultJobTitle, q.JobTitle)
	assert.Equal(t, DefaultLocation, q.Location)
	assert.Equal(t, AllPlatforms(), q.Platforms)
}

func TestNewSearchQuery_ExplicitValues(t *testing.T) {
	q := NewSearchQuery("Data Engineer", "Berlin", []Platform{PlatformIndeed})

	assert.Equal(t, "Data Engineer", q.JobTitle)
	assert.Equal(t, "Berlin", q.Location)
	assert.Equal(t, []Platform{PlatformIndeed}, q.Platforms)
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		input    string
		expected Platform
		ok       bool
	}{
		{"linkedin", PlatformLinkedIn, true},
		{"LINKEDIN", PlatformLinkedIn, true},
		{"  Indeed ", PlatformIndeed, true},
		{"indeed", PlatformIndeed, true},
		{"monster", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, ok := ParsePlatform(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestAllPlatforms_StableOrder(t *testing.T) {
	assert.Equal(t, AllPlatforms(), AllPlatforms())
	assert.Len(t, AllPlatforms(), 2)
}
