package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// GenerateEmbedding returns a simple deterministic embedding for the
// given text: total length, vowels, consonants and digits. Enough to
// give the postgres distance ordering something stable to work with
// without an external model.
func GenerateEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels, consonants, digits float32
	for _, r := range text {
		switch {
		case strings.ContainsRune("aeiou", r):
			vowels++
		case r >= 'a' && r <= 'z':
			consonants++
		case r >= '0' && r <= '9':
			digits++
		}
	}
	return pgvector.NewVector([]float32{float32(len(text)), vowels, consonants, digits})
}
