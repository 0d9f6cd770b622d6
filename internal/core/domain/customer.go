package domain

import (
	"regexp"
	"strings"
	"time"
)

// EntityType classifies a customer by trade direction.
type EntityType string

const (
	EntityExporter EntityType = "EXPORTER"
	EntityImporter EntityType = "IMPORTER"
)

// Valid reports whether t is a known entity type.
func (t EntityType) Valid() bool {
	return t == EntityExporter || t == EntityImporter
}

// GSTINPattern matches a structurally valid 15-character GSTIN after
// upper-case normalization: 2 digits, 5 letters, 4 digits, 1 letter,
// 1 alphanumeric, a literal 'Z', 1 alphanumeric.
var GSTINPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// NormalizeGSTIN upper-cases a GSTIN for storage and comparison. GSTINs are
// case-insensitive on input but stored canonically.
func NormalizeGSTIN(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

// BrokerRef is the owning-broker projection embedded in admin customer views.
type BrokerRef struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Customer is a record onboarded by exactly one broker. The (BrokerID, GSTIN)
// pair is unique: a broker cannot onboard the same tax ID twice, while two
// brokers may each hold a customer bearing the same GSTIN.
type Customer struct {
	ID         string     `json:"id"`
	BrokerID   string     `json:"brokerId"`
	FullName   string     `json:"fullName"`
	Email      string     `json:"email"`
	GSTIN      string     `json:"gstin"`
	EntityType EntityType `json:"entityType"`
	CreatedAt  time.Time  `json:"createdAt"`

	// Broker is populated only by cross-broker admin reads.
	Broker *BrokerRef `json:"broker,omitempty"`
}
