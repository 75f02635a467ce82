package backend

import (
	"testing"

	"github.com/blang/semver"
	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesSupportsAt(t *testing.T) {
	c := Capabilities{MinRuntimeVersion: semver.MustParse("2.0.0")}

	assert.True(t, c.SupportsAt(semver.MustParse("2.0.0")))
	assert.True(t, c.SupportsAt(semver.MustParse("3.1.4")))
	assert.False(t, c.SupportsAt(semver.MustParse("1.9.9")))
}

func TestReservedIsAndSanitize(t *testing.T) {
	r := NewReserved([]string{"class", "for"}, "_")

	assert.True(t, r.Is("class"))
	assert.False(t, r.Is("widget"))

	assert.Equal(t, "class_", r.Sanitize("class"))
	assert.Equal(t, "widget", r.Sanitize("widget"))
}

func TestReservedSanitizeRepeatsSuffixUntilClear(t *testing.T) {
	// A reserved-word list that itself contains the suffixed form forces
	// Sanitize to apply the suffix twice.
	r := NewReserved([]string{"type", "type_"}, "_")
	assert.Equal(t, "type__", r.Sanitize("type"))
}
