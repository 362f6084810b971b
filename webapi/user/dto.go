package user

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/nestfund/ledger/pkg/domain/user"
)

// CreateRequest is the body of POST /createUser.
type CreateRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Response is the wire representation of a user. The password hash never
// leaves the server.
type Response struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created"`
}

// ToResponse maps a domain user to its wire representation.
func ToResponse(u *domain.User) Response {
	return Response{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
