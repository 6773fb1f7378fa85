package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserDoc_DecodesBinaryPassword(t *testing.T) {
	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{
		"_id":      oid,
		"email":    "a@x.io",
		"password": primitive.Binary{Data: []byte("$2a$10$hash")},
		"is_admin": true,
	})
	require.NoError(t, err)

	var doc userDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))

	u := doc.toDomain()
	assert.Equal(t, oid.Hex(), u.ID)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
	assert.True(t, u.IsAdmin)
}

func TestBookDoc_IntegerPriceAndMissingUpdatedAt(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":         primitive.NewObjectID(),
		"title":       "T",
		"author":      "A",
		"price":       int32(12),
		"description": "",
		"stock":       int32(3),
	})
	require.NoError(t, err)

	var doc bookDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))

	b := doc.toDomain()
	assert.Equal(t, 12.0, b.Price)
	assert.Equal(t, 3, b.Stock)
	assert.Nil(t, b.UpdatedAt)
}

func TestBookDoc_OmitsNilUpdatedAt(t *testing.T) {
	raw, err := bson.Marshal(bookDoc{Title: "T", CreatedAt: time.Now()})
	require.NoError(t, err)

	_, err = bson.Raw(raw).LookupErr("updated_at")
	assert.Error(t, err)

	_, err = bson.Raw(raw).LookupErr("_id")
	assert.Error(t, err, "zero ObjectID must be omitted so the server assigns one")
}
