package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductUnmarshalKeepsExtraFields(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{
		"_id": "ignored",
		"id": "ignored",
		"name": "Red Scarf",
		"category": "Accessories",
		"price": 1999,
		"rating": 4.5,
		"sizes": ["S", "M"],
		"meta": {"stock": 3}
	}`), &p)
	require.NoError(t, err)

	assert.True(t, p.ID.IsZero())
	assert.Equal(t, "Red Scarf", p.Name)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, "Accessories", p.Category)
	assert.Equal(t, int64(1999), p.Extra["price"])
	assert.Equal(t, 4.5, p.Extra["rating"])
	assert.Equal(t, []interface{}{"S", "M"}, p.Extra["sizes"])
	assert.Equal(t, map[string]interface{}{"stock": int64(3)}, p.Extra["meta"])
	assert.NotContains(t, p.Extra, "id")
	assert.NotContains(t, p.Extra, "_id")
	assert.NotContains(t, p.Extra, "name")
}

func TestProductUnmarshalRejectsNonStringKnownFields(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"name": 42}`), &p)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "name must be a string", verr.Error())
}

func TestProductUnmarshalAcceptsNullAndMissing(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"name": null}`), &p))
	assert.Equal(t, "", p.Name)
	assert.Nil(t, p.Extra)

	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
}

func TestProductUnmarshalRejectsNonObjects(t *testing.T) {
	var p Product
	assert.Error(t, json.Unmarshal([]byte(`null`), &p))
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &p))
}

func TestProductMarshalFlattensExtra(t *testing.T) {
	id := primitive.NewObjectID()
	p := Product{
		ID:       id,
		Name:     "Denim Jacket",
		Category: "Men's Jackets",
		Extra:    map[string]interface{}{"color": "blue", "_id": "shadow"},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, map[string]interface{}{
		"id":       id.Hex(),
		"name":     "Denim Jacket",
		"category": "Men's Jackets",
		"color":    "blue",
	}, out)
}

func TestProductBSONInlinesExtra(t *testing.T) {
	p := Product{Name: "Linen Shirt", Extra: map[string]interface{}{"price": int64(25)}}

	raw, err := bson.Marshal(p)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "Linen Shirt", doc["name"])
	assert.Equal(t, int64(25), doc["price"])
	assert.NotContains(t, doc, "_id")
	assert.NotContains(t, doc, "description")

	var back Product
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, "Linen Shirt", back.Name)
	assert.Equal(t, int64(25), back.Extra["price"])
}

func TestProductBSONKeepsNonStringKnownFieldsInExtra(t *testing.T) {
	raw, err := bson.Marshal(bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "name", Value: int32(5)},
		{Key: "description", Value: nil},
		{Key: "category", Value: "Shirts"},
	})
	require.NoError(t, err)

	var p Product
	require.NoError(t, bson.Unmarshal(raw, &p))
	assert.False(t, p.ID.IsZero())
	assert.Equal(t, "", p.Name)
	assert.Equal(t, "Shirts", p.Category)
	assert.Equal(t, int32(5), p.Extra["name"])
	assert.NotContains(t, p.Extra, "description")
	assert.NotContains(t, p.Extra, "_id")
}
