package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item. Name, Description and Category are the fields the
// service queries on; anything else the client sent is kept in Extra and
// stored inline in the same document.
type Product struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	Name        string                 `bson:"name,omitempty"`
	Description string                 `bson:"description,omitempty"`
	Category    string                 `bson:"category,omitempty"`
	Extra       map[string]interface{} `bson:",inline"`
}

var reservedKeys = map[string]bool{"id": true, "_id": true}

// MarshalJSON renders the product as one flat object with the id as a hex string.
func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Extra)+4)
	for k, v := range p.Extra {
		if reservedKeys[k] {
			continue
		}
		out[k] = v
	}
	if !p.ID.IsZero() {
		out["id"] = p.ID.Hex()
	}
	if p.Name != "" {
		out["name"] = p.Name
	}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if p.Category != "" {
		out["category"] = p.Category
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts any JSON object. The known fields must be strings
// when present; client supplied ids are dropped since ids belong to storage.
func (p *Product) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return &ValidationError{Message: "product must be a JSON object"}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*p = Product{}
	for _, field := range []struct {
		key string
		dst *string
	}{
		{"name", &p.Name},
		{"description", &p.Description},
		{"category", &p.Category},
	} {
		v, ok := raw[field.key]
		if !ok {
			continue
		}
		delete(raw, field.key)
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return &ValidationError{
				Field:   field.key,
				Message: fmt.Sprintf("%s must be a string", field.key),
			}
		}
		*field.dst = s
	}

	for k, v := range raw {
		if reservedKeys[k] {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]interface{}, len(raw))
		}
		p.Extra[k] = normalizeNumbers(v)
	}
	return nil
}

// UnmarshalBSON reads a stored document. Documents are schema-less, so a
// name, description or category holding anything but a string is kept in
// Extra under its own key instead of failing the decode.
func (p *Product) UnmarshalBSON(data []byte) error {
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}

	*p = Product{}
	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		p.ID = id
		delete(doc, "_id")
	}
	for _, field := range []struct {
		key string
		dst *string
	}{
		{"name", &p.Name},
		{"description", &p.Description},
		{"category", &p.Category},
	} {
		v, ok := doc[field.key]
		if !ok {
			continue
		}
		if s, isString := v.(string); isString {
			*field.dst = s
			delete(doc, field.key)
		} else if v == nil {
			delete(doc, field.key)
		}
	}

	if len(doc) > 0 {
		p.Extra = map[string]interface{}(doc)
	}
	return nil
}

// normalizeNumbers turns json.Number into int64 where the value is integral
// and float64 otherwise, so numbers keep their kind once stored.
func normalizeNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]interface{}:
		for k, item := range t {
			t[k] = normalizeNumbers(item)
		}
		return t
	case []interface{}:
		for i, item := range t {
			t[i] = normalizeNumbers(item)
		}
		return t
	default:
		return v
	}
}

// ValidationError reports a request body that cannot become a record.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
