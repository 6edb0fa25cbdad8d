package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEmbedding(t *testing.T) {
	vec := GenerateEmbedding("Pasta 4")
	assert.Equal(t, []float32{7, 2, 3, 1}, vec.Slice())

	// Deterministic and case-insensitive.
	assert.Equal(t, GenerateEmbedding("PASTA 4"), vec)
	assert.Equal(t, []float32{0, 0, 0, 0}, GenerateEmbedding("").Slice())
}
