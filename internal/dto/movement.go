package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
)

// movementDateLayout is the wire format for movement dates: a calendar date
// with no time component.
const movementDateLayout = "2006-01-02"

// CreateMovementRequest defines the data needed to record a movement.
type CreateMovementRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Kind      string          `json:"kind" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      string          `json:"date" binding:"required"`
}

// ParsedDate parses the request date field.
func (r CreateMovementRequest) ParsedDate() (time.Time, error) {
	d, err := time.Parse(movementDateLayout, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", apperrors.ErrValidation)
	}
	return d, nil
}

// UpdateMovementRequest defines the data allowed for updating a movement.
// Only the date is mutable; amount, kind and account changes would desync
// the account balance and are not supported.
type UpdateMovementRequest struct {
	Date string `json:"date" binding:"required"`
}

// ParsedDate parses the request date field.
func (r UpdateMovementRequest) ParsedDate() (time.Time, error) {
	d, err := time.Parse(movementDateLayout, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", apperrors.ErrValidation)
	}
	return d, nil
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID    string          `json:"movementID"`
	AccountID     string          `json:"accountID"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListMovementsResponse wraps the list of movements.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse DTO.
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:    m.MovementID,
		AccountID:     m.AccountID,
		Kind:          string(m.Kind),
		Amount:        m.Amount,
		Date:          m.Date.Format(movementDateLayout),
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToListMovementsResponse converts a slice of domain.Movement to the list DTO.
func ToListMovementsResponse(movements []domain.Movement) ListMovementsResponse {
	res := make([]MovementResponse, len(movements))
	for i, m := range movements {
		res[i] = ToMovementResponse(&m)
	}
	return ListMovementsResponse{Movements: res}
}
