// Package domain contains persistence models for marketplace subscribers.
package domain

import "time"

// Status values for a subscriber record.
const (
	StatusRegistered = "REGISTERED"
)

// SubscriberRecord stores one registered customer per listing. The customer
// identifier returned by the directory is the table key; repeated
// registrations for the same customer overwrite the row.
type SubscriberRecord struct {
	CustomerIdentifier string    `gorm:"primaryKey" json:"customerIdentifier"`
	ProductCode        string    `gorm:"not null" json:"productCode"`
	FirstName          string    `gorm:"not null" json:"firstName"`
	LastName           string    `gorm:"not null" json:"lastName"`
	ContactEmail       string    `gorm:"not null" json:"contactEmail"`
	ContactPerson      string    `gorm:"not null" json:"contactPerson"`
	RegistrationDate   time.Time `gorm:"not null" json:"registrationDate"`
	ListingName        string    `gorm:"not null" json:"listingName"`
	Status             string    `gorm:"not null" json:"status"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (SubscriberRecord) TableName() string { return "subscribers" }
