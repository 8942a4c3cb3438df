package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/phoenix-escrow/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type PatchableListing struct {
		Description *string `bson:"description,omitempty"`
		Price       *int64  `bson:"price,omitempty"`
		Seller      string  `bson:"seller"`
		Note        string  `bson:"note"`
	}

	patchable := &PatchableListing{}
	patchable.Description = ptr.String("")
	patchable.Price = ptr.Int64(1000)
	patchable.Note = "hey!yo!"

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"description": "",
			"price":       int64(1000),
			// field seller is empty, so ignore
			"note": "hey!yo!",
		},
		updater,
	)
}
