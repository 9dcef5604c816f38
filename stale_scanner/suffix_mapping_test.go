package stale_scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuffixMapping_Matches(t *testing.T) {
	lower := NewSuffixMapping(".jj", ".jj")

	assert.True(t, lower.Matches("Parser.jj"))
	assert.False(t, lower.Matches("Parser.JJ"))
	assert.False(t, lower.Matches("Parser.jjt"))
	assert.False(t, NewSuffixMapping("", ".jj").Matches("Parser.jj"))
}

func TestSuffixMapping_TargetNames(t *testing.T) {
	mapping := NewSuffixMapping(".jjt", ".jj", ".jjt")

	assert.Equal(t, []string{"Tree.jj", "Tree.jjt"}, mapping.TargetNames("Tree.jjt"))
	assert.Nil(t, mapping.TargetNames("Tree.jj"))
}
