package auth

// User represents an application account. The stored hash never leaves the
// service boundary.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string  `json:"username" validate:"required,max=100"`
	Password string  `json:"password" validate:"required,min=1"`
	Role     *string `json:"role,omitempty" validate:"omitempty,max=50"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the authenticated user and a signed token.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
