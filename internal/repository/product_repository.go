package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"clothing-catalog/internal/models"
)

const (
	lookupTimeout = 3 * time.Second
	writeTimeout  = 5 * time.Second
	scanTimeout   = 10 * time.Second
)

// MongoCatalog serves products and banners from two collections.
type MongoCatalog struct {
	products *mongo.Collection
	banners  *mongo.Collection
	search   SearchOptions
}

// NewMongoCatalog builds a catalog over the products and banners collections.
func NewMongoCatalog(products, banners *mongo.Collection, search SearchOptions) *MongoCatalog {
	return &MongoCatalog{
		products: products,
		banners:  banners,
		search:   search,
	}
}

// ListCategories returns every distinct category, lower-cased.
func (r *MongoCatalog) ListCategories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	values, err := r.products.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "distinct categories")
	}
	return normalizeCategories(values), nil
}

// FindByCategory matches name anywhere in the category, ignoring case.
func (r *MongoCatalog) FindByCategory(ctx context.Context, name string) ([]models.Product, error) {
	return r.find(ctx, bson.M{"category": containsFilter(name)})
}

// Search finds products whose searched fields contain the query.
func (r *MongoCatalog) Search(ctx context.Context, query string) ([]models.Product, error) {
	filter, err := searchFilter(r.search, query)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter)
}

// ListAll returns every product, unfiltered.
func (r *MongoCatalog) ListAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{})
}

// GetByID looks a product up by its hex ObjectID.
func (r *MongoCatalog) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var product models.Product
	err = r.products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrapf(err, "find product %s", id)
	}

	return &product, nil
}

// InsertProduct stores the product and sets its new ID.
func (r *MongoCatalog) InsertProduct(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	product.ID = primitive.NewObjectID()
	if _, err := r.products.InsertOne(ctx, product); err != nil {
		product.ID = primitive.NilObjectID
		return errors.Wrap(err, "insert product")
	}
	return nil
}

// Ping checks the deployment is reachable.
func (r *MongoCatalog) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	return r.products.Database().Client().Ping(ctx, nil)
}

func (r *MongoCatalog) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	cursor, err := r.products.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

// searchFilter ORs a substring match for every term against every searched field.
func searchFilter(opts SearchOptions, query string) (bson.M, error) {
	terms, err := opts.terms(query)
	if err != nil {
		return nil, err
	}

	var or []bson.M
	for _, term := range terms {
		for _, field := range opts.fields() {
			or = append(or, bson.M{field: containsFilter(term)})
		}
	}
	return bson.M{"$or": or}, nil
}

// containsFilter is a case-insensitive substring match on a literal value.
func containsFilter(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}
