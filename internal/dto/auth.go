package dto

// RegisterRequest defines the data needed to register a new owner.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	TaxID    string `json:"taxID" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the signed token plus an identity summary.
type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	OwnerID   string `json:"ownerID"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}
