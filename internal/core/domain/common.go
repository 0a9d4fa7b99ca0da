package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// NewAuditFields returns audit fields stamped with the given time for both
// creation and last update.
func NewAuditFields(now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
}
