package domain

// Owner represents a person holding one or more accounts.
// PasswordHash never leaves the service layer; handlers expose owners via
// DTOs that omit it.
type Owner struct {
	OwnerID      string `json:"ownerID"` // Primary Key (UUID)
	Name         string `json:"name"`
	TaxID        string `json:"taxID"` // Unique
	Address      string `json:"address"`
	Email        string `json:"email"` // Unique
	PasswordHash string `json:"-"`
	AuditFields
}
