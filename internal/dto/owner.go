package dto

import (
	"time"

	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
)

// UpdateOwnerRequest defines the fields an owner is allowed to change after
// registration. Email and credentials are immutable through this path.
type UpdateOwnerRequest struct {
	Name    *string `json:"name"`
	TaxID   *string `json:"taxID"`
	Address *string `json:"address"`
}

// OwnerResponse defines the data returned for an owner. The password hash is
// never exposed.
type OwnerResponse struct {
	OwnerID       string    `json:"ownerID"`
	Name          string    `json:"name"`
	TaxID         string    `json:"taxID"`
	Address       string    `json:"address"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListOwnersResponse wraps the list of owners.
type ListOwnersResponse struct {
	Owners []OwnerResponse `json:"owners"`
}

// ToOwnerResponse converts a domain.Owner to OwnerResponse DTO.
func ToOwnerResponse(o *domain.Owner) OwnerResponse {
	return OwnerResponse{
		OwnerID:       o.OwnerID,
		Name:          o.Name,
		TaxID:         o.TaxID,
		Address:       o.Address,
		Email:         o.Email,
		CreatedAt:     o.CreatedAt,
		LastUpdatedAt: o.LastUpdatedAt,
	}
}

// ToListOwnersResponse converts a slice of domain.Owner to the list DTO.
func ToListOwnersResponse(owners []domain.Owner) ListOwnersResponse {
	res := make([]OwnerResponse, len(owners))
	for i, o := range owners {
		res[i] = ToOwnerResponse(&o)
	}
	return ListOwnersResponse{Owners: res}
}
