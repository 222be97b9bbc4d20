package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Jute Tote", "jute-tote"},
		{"Grøn Taske", "gron-taske"},
		{"Bæredygtig Jute Sæk", "baeredygtig-jute-saek"},
		{"Kaffe & Té — Pose", "kaffe-te-pose"},
		{"  Hessian   Runner  ", "hessian-runner"},
		{"100% Natural", "100-natural"},
		{"Åkande", "akande"},
	}
	for _, c := range cases {
		got := Slugify(c.name)
		assert.Equal(t, c.want, got)
		assert.Regexp(t, SlugPattern, got)
	}
}

func TestNextIDMonotonic(t *testing.T) {
	a := NextID()
	b := NextID()
	assert.Greater(t, b, a)
}

func TestSha256HashWithSalt(t *testing.T) {
	h1 := Sha256HashWithSalt("secret", "salt-a")
	h2 := Sha256HashWithSalt("secret", "salt-b")
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, h2)
}
