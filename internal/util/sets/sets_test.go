package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("/b/", "/a/")
	s.Add("/c/")
	s.Add("/a/")

	assert.True(t, s.Has("/a/"))
	assert.False(t, s.Has("/d/"))
	assert.Equal(t, []string{"/a/", "/b/", "/c/"}, s.Sorted())

	assert.Empty(t, New[string]().Sorted())
}
