package repository

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"clothing-catalog/internal/models"
)

// ListBanners returns every banner.
func (r *MongoCatalog) ListBanners(ctx context.Context) ([]models.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	cursor, err := r.banners.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "find banners")
	}
	defer cursor.Close(ctx)

	banners := make([]models.Banner, 0)
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, errors.Wrap(err, "decode banners")
	}
	return banners, nil
}

// InsertBanner refuses a second banner for the same category. The lookup gives
// the common case a clean answer; the unique index on category catches two
// inserts racing past it.
func (r *MongoCatalog) InsertBanner(ctx context.Context, banner *models.Banner) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err := r.banners.FindOne(ctx, bson.M{"category": banner.Category}).Err()
	switch {
	case err == nil:
		return ErrBannerExists
	case !errors.Is(err, mongo.ErrNoDocuments):
		return errors.Wrap(err, "check banner")
	}

	if _, err := r.banners.InsertOne(ctx, banner); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrBannerExists
		}
		return errors.Wrap(err, "insert banner")
	}
	return nil
}
