package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is stored as-is in the "records" collection; JSON and BSON
// field names are the same.
type Record struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Album     string             `json:"album" bson:"album"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
	Version   int                `json:"__v" bson:"__v"`
}

type CreateRecordRequest struct {
	Name  string
	Album string
}
