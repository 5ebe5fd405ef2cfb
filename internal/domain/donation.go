package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DonationStatus enumerates the lifecycle of a donation request.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusConfirmed DonationStatus = "confirmed"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusCancelled DonationStatus = "cancelled"
)

// ValidDonationStatus reports whether the value belongs to the closed set.
func ValidDonationStatus(s DonationStatus) bool {
	switch s {
	case DonationStatusPending, DonationStatusConfirmed, DonationStatusCompleted, DonationStatusCancelled:
		return true
	}
	return false
}

// Donation is a blood donation request. ID is the store-generated key;
// new requests always start as pending.
type Donation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequesterName  string             `bson:"requesterName" json:"requesterName"`
	RequesterEmail string             `bson:"requesterEmail" json:"requesterEmail"`
	BloodGroup     string             `bson:"bloodGroup" json:"bloodGroup"`
	Division       string             `bson:"division" json:"division"`
	District       string             `bson:"district" json:"district"`
	Upazila        string             `bson:"upazila,omitempty" json:"upazila,omitempty"`
	Hospital       string             `bson:"hospital,omitempty" json:"hospital,omitempty"`
	Address        string             `bson:"address,omitempty" json:"address,omitempty"`
	DonationDate   string             `bson:"donationDate,omitempty" json:"donationDate,omitempty"`
	DonationTime   string             `bson:"donationTime,omitempty" json:"donationTime,omitempty"`
	Reason         string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Status         DonationStatus     `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
