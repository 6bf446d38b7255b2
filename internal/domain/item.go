package domain

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the workflow position of a donation item. The set is closed:
// items start Available, move to Pending when requested, and end Claimed.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusPending   Status = "Pending"
	StatusClaimed   Status = "Claimed"
)

// ErrInvalidStatus is returned when a status value is outside the closed set.
var ErrInvalidStatus = errors.New("invalid item status")

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusClaimed:
		return true
	}
	return false
}

// ParseStatus validates a raw status string against the closed set.
// The empty string maps to StatusAvailable, matching documents written
// before the status field existed.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusAvailable, nil
	}
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Item is a single donation listing document. Field names mirror the wire
// format used by the products collection, so BSON and JSON tags are
// identical.
type Item struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"                json:"_id,omitempty"`
	FoodName          string             `bson:"foodName"                     json:"foodName"`
	FoodQuantity      string             `bson:"foodQuantity"                 json:"foodQuantity"`
	Date              string             `bson:"date"                         json:"date"`
	Location          string             `bson:"location"                     json:"location"`
	FoodImg           string             `bson:"foodImg"                      json:"foodImg"`
	Donation          string             `bson:"donation"                     json:"donation"`
	Notes             string             `bson:"notes"                        json:"notes"`
	UserDisplayName   string             `bson:"userDisplayName"              json:"userDisplayName"`
	UserPhotoURL      string             `bson:"userPhotoURL"                 json:"userPhotoURL"`
	UserEmail         string             `bson:"userEmail"                    json:"userEmail"`
	RequesterEmail    string             `bson:"requesterEmail,omitempty"     json:"requesterEmail,omitempty"`
	RequesterName     string             `bson:"requesterName,omitempty"      json:"requesterName,omitempty"`
	RequesterPhotoURL string             `bson:"requesterPhotoURL,omitempty"  json:"requesterPhotoURL,omitempty"`
	RequestDate       string             `bson:"requestDate,omitempty"        json:"requestDate,omitempty"`
	Status            Status             `bson:"status,omitempty"             json:"status,omitempty"`
}

// EffectiveStatus returns the item's workflow position, treating an unset
// status as Available.
func (i *Item) EffectiveStatus() Status {
	if i.Status == "" {
		return StatusAvailable
	}
	return i.Status
}

// Validate checks that the item's status, if set, belongs to the closed set.
func (i *Item) Validate() error {
	if i.Status != "" && !i.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// ItemPatch carries a partial edit of an item's presentation fields.
// Nil pointers mean "leave unchanged".
type ItemPatch struct {
	FoodName     *string `json:"foodName,omitempty"`
	FoodQuantity *string `json:"foodQuantity,omitempty"`
	Date         *string `json:"date,omitempty"`
	Location     *string `json:"location,omitempty"`
	FoodImg      *string `json:"foodImg,omitempty"`
	Donation     *string `json:"donation,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch carries no field changes.
func (p *ItemPatch) IsEmpty() bool {
	return p.FoodName == nil && p.FoodQuantity == nil && p.Date == nil &&
		p.Location == nil && p.FoodImg == nil && p.Donation == nil && p.Notes == nil
}
