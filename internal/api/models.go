package api

// Common request/response structures

// SessionRequest defines the payload for the session token endpoint. The
// identity is taken at face value; there is no account store to check it
// against.
type SessionRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	DisplayName string `json:"displayName" validate:"max=256"`
	PhotoURL    string `json:"photoURL"    validate:"omitempty,url"`
}

// SessionResponse defines the response for the session and logout endpoints.
// The token itself travels only in the http-only cookie.
type SessionResponse struct {
	Success bool `json:"success"`
}

// AddItemRequest defines the payload for creating a donation item.
// Only the food name is mandatory; the source accepted arbitrarily sparse
// documents.
type AddItemRequest struct {
	FoodName        string `json:"foodName"        validate:"required"`
	FoodQuantity    string `json:"foodQuantity"`
	Date            string `json:"date"`
	Location        string `json:"location"`
	FoodImg         string `json:"foodImg"         validate:"omitempty,url"`
	Donation        string `json:"donation"`
	Notes           string `json:"notes"`
	UserDisplayName string `json:"userDisplayName"`
	UserPhotoURL    string `json:"userPhotoURL"    validate:"omitempty,url"`
	UserEmail       string `json:"userEmail"       validate:"omitempty,email"`
}

// AddItemResponse carries the store-assigned identifier of a new item.
type AddItemResponse struct {
	InsertedID string `json:"insertedId"`
}

// ClaimItemRequest defines the payload for the full-replace endpoint, which
// records a claim request: every listed field is overwritten and the status
// is forced to Pending.
type ClaimItemRequest struct {
	FoodName          string `json:"foodName"          validate:"required"`
	FoodQuantity      string `json:"foodQuantity"`
	Date              string `json:"date"`
	Location          string `json:"location"`
	FoodImg           string `json:"foodImg"           validate:"omitempty,url"`
	Donation          string `json:"donation"`
	Notes             string `json:"notes"`
	UserDisplayName   string `json:"userDisplayName"`
	UserPhotoURL      string `json:"userPhotoURL"      validate:"omitempty,url"`
	UserEmail         string `json:"userEmail"         validate:"omitempty,email"`
	RequesterEmail    string `json:"requesterEmail"    validate:"required,email"`
	RequesterName     string `json:"requesterName"`
	RequesterPhotoURL string `json:"requesterPhotoURL" validate:"omitempty,url"`
	RequestDate       string `json:"requestDate"`
}

// UpdateStatusRequest defines the payload for the status-only patch.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateRequesterEmailRequest defines the payload for the requester-email-only patch.
type UpdateRequesterEmailRequest struct {
	RequesterEmail string `json:"requesterEmail" validate:"required,email"`
}

// UpdateResponse acknowledges a replace or patch.
type UpdateResponse struct {
	Success bool `json:"success"`
}

// DeleteItemResponse reports how many documents a delete removed. Deleting
// a non-existent identifier succeeds with a zero count.
type DeleteItemResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
