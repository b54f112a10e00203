// Package domain contains persistence models for usage metering events.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Fixed values reported for the registration event.
const (
	DimensionUsers    = "Users"
	EventRegistration = "REGISTRATION"
)

// TimestampLayout renders the metering sort key with a fixed-width
// nanosecond fraction. RFC3339Nano trims trailing zeros, which breaks
// lexicographic ordering ("...T12:00:00Z" sorts after "...T12:00:00.5Z");
// zero padding keeps string order equal to time order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// MeteringRecord is one append-only usage event. The composite key of
// customer identifier and timestamp makes every append a new row; records
// are never mutated after write.
type MeteringRecord struct {
	CustomerIdentifier string       `gorm:"primaryKey" json:"customerIdentifier"`
	Timestamp          string       `gorm:"primaryKey" json:"timestamp"`
	EventID            snowflake.ID `gorm:"uniqueIndex" json:"event_id"`
	ProductCode        string       `gorm:"not null" json:"productCode"`
	Dimension          string       `gorm:"not null" json:"dimension"`
	Quantity           int          `gorm:"not null" json:"quantity"`
	Event              string       `gorm:"not null" json:"event"`
	CreatedAt          time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (MeteringRecord) TableName() string { return "metering_records" }
