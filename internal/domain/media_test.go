package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeTagsLowercasesOnlyNewTags(t *testing.T) {
	asset := MediaAsset{Tags: []string{"Hero", "frontpage"}}
	asset.MergeTags([]string{"Banner", " frontpage ", "HERO", "natural"})

	// pre-existing casing untouched, new tags folded, duplicates dropped
	assert.Equal(t, []string{"Hero", "frontpage", "banner", "natural"}, asset.Tags)
}

func TestMergeTagsIgnoresEmpty(t *testing.T) {
	var asset MediaAsset
	asset.MergeTags([]string{"", "  ", "jute"})
	assert.Equal(t, []string{"jute"}, asset.Tags)
}
