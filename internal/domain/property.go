package domain

import "time"

// Property listing statuses.
const (
	PropertyPublished = "published"
	PropertyDraft     = "draft"
)

// Address is a property street address with optional coordinates.
type Address struct {
	Street      string       `json:"street"`
	City        string       `json:"city"`
	State       string       `json:"state,omitempty"`
	Country     string       `json:"country,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PropertyImages groups the listing imagery.
type PropertyImages struct {
	MainImage   string   `json:"mainImage,omitempty"`
	Gallery     []string `json:"gallery,omitempty"`
	FloorPlan   string   `json:"floorPlan,omitempty"`
	VirtualTour string   `json:"virtualTour,omitempty"`
}

// Property is a rental listing.
type Property struct {
	ID                     string         `json:"_id"`
	Title                  string         `json:"title"`
	Description            string         `json:"description,omitempty"`
	Address                Address        `json:"address"`
	Price                  float64        `json:"price"`
	Bedrooms               int            `json:"bedrooms"`
	Bathrooms              int            `json:"bathrooms"`
	Area                   float64        `json:"area"`
	Images                 PropertyImages `json:"images"`
	Status                 string         `json:"status"`
	IsVerified             bool           `json:"isVerified"`
	VerifiedAt             *time.Time     `json:"verifiedAt,omitempty"`
	PropertyProofDocuments []Attachment   `json:"propertyProofDocuments,omitempty"`
	LandlordID             Party          `json:"landlordId"`
	CreatedAt              time.Time      `json:"createdAt"`
}

// PropertyPage is one page of the upstream paginated property list.
type PropertyPage struct {
	Properties []Property `json:"properties"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}
