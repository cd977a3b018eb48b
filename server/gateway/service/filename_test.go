package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var generatedName = regexp.MustCompile(`^\d{13,}_[0-9a-z]+\.png$`)

func TestNewStoredNameGenerated(t *testing.T) {
	name := NewStoredName("", "logo.png")
	assert.Regexp(t, generatedName, name)
}

func TestNewStoredNameSuppliedVerbatim(t *testing.T) {
	assert.Equal(t, "banner.webp", NewStoredName("banner.webp", "original.png"))
}

func TestNewStoredNameUniqueWithinMillisecond(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		name := NewStoredName("", "a.jpg")
		_, dup := seen[name]
		assert.False(t, dup, "duplicate name %s", name)
		seen[name] = struct{}{}
	}
}

func TestNewStoredNameNoExtension(t *testing.T) {
	name := NewStoredName("", "raw-upload")
	assert.Regexp(t, `^\d{13,}_[0-9a-z]+$`, name)
}
