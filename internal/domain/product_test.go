package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaultsOnEmptyRow(t *testing.T) {
	var p Product
	p.NormalizeDefaults()

	assert.NotNil(t, p.Gallery)
	assert.NotNil(t, p.UseCases)
	assert.NotNil(t, p.Composition.OtherFibers)
	assert.NotNil(t, p.Composition.Certifications)
	assert.NotNil(t, p.Governance.ComplianceStandards)
	assert.Equal(t, DefaultSectionVisibility(), p.Visibility)
}

func TestNormalizeDefaultsKeepsExplicitVisibility(t *testing.T) {
	p := Product{Visibility: SectionVisibility{Composition: true}}
	p.NormalizeDefaults()
	assert.False(t, p.Visibility.Esg)
	assert.True(t, p.Visibility.Composition)
}

func TestCompletionScore(t *testing.T) {
	var p Product
	assert.Equal(t, 0, p.CompletionScore())

	p.NameEn = "Jute Tote"
	p.NameDa = "Jutetaske"
	p.DescriptionEn = "A sturdy tote."
	p.DescriptionDa = "En solid taske."
	assert.Equal(t, 50, p.CompletionScore())

	p.CategoryID = "bags"
	p.ImageURL = "https://cdn.example.com/tote.jpg"
	p.Gallery = []string{"https://cdn.example.com/tote-2.jpg"}
	p.Composition.JutePercent = 100
	assert.Equal(t, 100, p.CompletionScore())
}
