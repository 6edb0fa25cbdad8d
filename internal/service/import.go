package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tastebook/backend/internal/importer"
	"github.com/tastebook/backend/internal/models"
)

// ImportService runs the page import pipeline and persists the result.
// Successful extractions are cached in Redis by URL so re-importing the
// same page skips the remote fetch.
// ImageMirror copies a remote image into owned storage and returns the
// new URL. *ImageService satisfies this.
type ImageMirror interface {
	MirrorImage(ctx context.Context, imageURL string, recipeID uuid.UUID) (string, error)
}

type ImportService struct {
	db       *gorm.DB
	importer *importer.Importer
	redis    *redis.Client
	cacheTTL time.Duration
	images   ImageMirror
}

// NewImportService creates an ImportService. redisClient may be nil, in
// which case caching is disabled.
func NewImportService(db *gorm.DB, imp *importer.Importer, redisClient *redis.Client, cacheTTL time.Duration) *ImportService {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &ImportService{
		db:       db,
		importer: imp,
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

// UseImageMirror enables image mirroring for subsequent imports.
func (s *ImportService) UseImageMirror(m ImageMirror) {
	s.images = m
}

// ImportRecipe fetches and extracts the page at rawURL and stores the
// result as a recipe owned by userID. Extraction failures come back as
// *importer.Error for the handler to translate.
func (s *ImportService) ImportRecipe(ctx context.Context, rawURL string, userID uuid.UUID) (*models.Recipe, error) {
	imported, err := s.cachedImport(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:        imported.Title,
		Description:  imported.Description,
		Ingredients:  imported.Ingredients,
		Instructions: imported.Instructions,
		PrepMinutes:  imported.PrepMinutes,
		CookMinutes:  imported.CookMinutes,
		Servings:     imported.Servings,
		Difficulty:   imported.Difficulty,
		ImageURL:     imported.ImageURL,
		SourceURL:    imported.SourceURL,
		UserID:       userID,
		Embedding:    GenerateEmbedding(imported.Title + " " + imported.Description),
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to save imported recipe: %w", err)
	}

	// Mirroring is best effort; the source URL still works if it fails.
	if s.images != nil && recipe.ImageURL != "" {
		mirrored, err := s.images.MirrorImage(ctx, recipe.ImageURL, recipe.ID)
		if err != nil {
			log.Printf("failed to mirror image for recipe %s: %v", recipe.ID, err)
		} else if updateErr := s.db.WithContext(ctx).Model(recipe).Update("image_url", mirrored).Error; updateErr == nil {
			recipe.ImageURL = mirrored
		}
	}

	return recipe, nil
}

// Preview runs the pipeline without persisting anything.
func (s *ImportService) Preview(ctx context.Context, rawURL string) (*importer.ImportedRecipe, error) {
	return s.cachedImport(ctx, rawURL)
}

func (s *ImportService) cachedImport(ctx context.Context, rawURL string) (*importer.ImportedRecipe, error) {
	key := "import:result:" + rawURL

	if s.redis != nil {
		if data, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			var cached importer.ImportedRecipe
			if json.Unmarshal(data, &cached) == nil {
				return &cached, nil
			}
		}
	}

	imported, err := s.importer.Import(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(imported); err == nil {
			// Cache write failures are not worth failing the import over.
			s.redis.Set(ctx, key, data, s.cacheTTL)
		}
	}

	return imported, nil
}
