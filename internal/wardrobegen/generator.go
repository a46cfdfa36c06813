package wardrobegen

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/capsule/internal/domain/model"
)

// randomFloatDivisor gives ~6 decimal digits of resolution.
const randomFloatDivisor = 1_000_000

// categoryDistribution skews generation toward tops and bottoms so the
// top+bottom skeleton always has material to work with, mirroring a real
// wardrobe upload mix.
var categoryDistribution = []model.Category{
	model.CategoryTop,
	model.CategoryTop,
	model.CategoryTop,
	model.CategoryBottom,
	model.CategoryBottom,
	model.CategorySkirt,
	model.CategoryDress,
	model.CategoryRomper,
	model.CategoryJacket,
	model.CategoryJacket,
}

// getRandomFloat returns a random float64 in [0,1) using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// GenerateItems creates count synthetic classified items with unique ids.
func GenerateItems(count, embeddingDim int) []model.Item {
	colorGroups := model.ColorGroups()

	items := make([]model.Item, count)
	for i := 0; i < count; i++ {
		embedding := make([]float64, embeddingDim)
		for d := range embedding {
			// Centered around zero like a normalized CLIP-style embedding.
			embedding[d] = getRandomFloat()*2 - 1
		}
		items[i] = model.Item{
			ID:         uuid.New().String(),
			Category:   categoryDistribution[i%len(categoryDistribution)],
			ColorGroup: colorGroups[int(getRandomFloat()*float64(len(colorGroups)))%len(colorGroups)],
			Embedding:  embedding,
		}
	}
	return items
}
