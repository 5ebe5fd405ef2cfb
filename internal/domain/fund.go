package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fund is a monetary contribution record. Funds are append-only; no
// update or delete path exists.
type Fund struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Amount     float64            `bson:"amount" json:"amount"`
	DonorName  string             `bson:"donorName" json:"donorName"`
	DonorEmail string             `bson:"donorEmail" json:"donorEmail"`
	Date       time.Time          `bson:"date" json:"date"`
}
