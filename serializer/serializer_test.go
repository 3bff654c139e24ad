package serializer

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSerializeMovesObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := bson.M{"_id": oid, "name": "Shoes", "slug": "shoes"}

	out, err := Serialize(doc)
	require.NoError(t, err)

	assert.Equal(t, oid.Hex(), out["id"])
	assert.NotContains(t, out, "_id")
	assert.Equal(t, "Shoes", out["name"])
	assert.Equal(t, "shoes", out["slug"])
}

func TestSerializeIsPure(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	doc := bson.M{
		"_id":        oid,
		"title":      "Metcon 9",
		"created_at": primitive.NewDateTimeFromTime(created),
		"sizes":      primitive.A{"6", "7"},
	}

	first, err := Serialize(doc)
	require.NoError(t, err)
	second, err := Serialize(doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, oid, doc["_id"])
	assert.Equal(t, primitive.NewDateTimeFromTime(created), doc["created_at"])
	assert.NotContains(t, doc, "id")
}

func TestSerializeConvertsDates(t *testing.T) {
	local := time.FixedZone("CEST", 2*60*60)
	doc := bson.M{
		"created_at": time.Date(2024, 5, 1, 14, 30, 0, 123000000, local),
		"updated_at": primitive.NewDateTimeFromTime(time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)),
		"history": primitive.A{
			bson.M{"at": primitive.NewDateTimeFromTime(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))},
		},
	}

	out, err := Serialize(doc)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01T12:30:00.123Z", out["created_at"])
	assert.Equal(t, "2024-05-02T08:00:00Z", out["updated_at"])
	history := out["history"].([]any)
	assert.Equal(t, "2023-01-01T00:00:00Z", history[0].(map[string]any)["at"])
	assert.NotContains(t, out, "id")
}

func TestSerializeValueKinds(t *testing.T) {
	ref := primitive.NewObjectID()
	dec, err := primitive.ParseDecimal128("129.99")
	require.NoError(t, err)
	u, _ := url.Parse("https://images.unsplash.com/photo-1542291026-7eec264c27ff")

	out, err := Serialize(bson.M{
		"_id":         "custom-id",
		"price":       129.99,
		"stock":       int32(3),
		"featured":    true,
		"description": nil,
		"ref":         ref,
		"exact_price": dec,
		"image":       u,
		"colors":      []string{"Black"},
		"meta":        bson.D{{Key: "source", Value: "seed"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "custom-id", out["id"])
	assert.Equal(t, 129.99, out["price"])
	assert.Equal(t, int32(3), out["stock"])
	assert.Equal(t, true, out["featured"])
	assert.Nil(t, out["description"])
	assert.Contains(t, out, "description")
	assert.Equal(t, ref.Hex(), out["ref"])
	assert.Equal(t, "129.99", out["exact_price"])
	assert.Equal(t, u.String(), out["image"])
	assert.Equal(t, []string{"Black"}, out["colors"])
	assert.Equal(t, map[string]any{"source": "seed"}, out["meta"])
}

func TestSerializeRejectsUnknownKinds(t *testing.T) {
	_, err := Serialize(bson.M{"_id": primitive.NewObjectID(), "handler": func() {}})

	var uerr *UnsupportedValueError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "handler", uerr.Field)

	_, err = Serialize(bson.M{"tags": primitive.A{"ok", struct{}{}}})
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "tags[1]", uerr.Field)
}

func TestSerializeAll(t *testing.T) {
	out, err := SerializeAll(nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	out, err = SerializeAll([]bson.M{{"_id": a}, {"_id": b}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, a.Hex(), out[0]["id"])
	assert.Equal(t, b.Hex(), out[1]["id"])
}
