package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/purchasebook/purchasebook/internal/shared"
)

const defaultRole = "user"

// Service wraps authentication business rules. Passwords are stored as
// bcrypt hashes; logins are exchanged for signed HS256 tokens.
type Service struct {
	repo      Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewService constructs a new Service.
func NewService(repo Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

// Register validates and creates an account. Validation failures happen
// before any write reaches the store.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return User{}, shared.E(shared.KindValidation, "username cannot be empty")
	}
	if req.Password == "" {
		return User{}, shared.E(shared.KindValidation, "password cannot be empty")
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return User{}, shared.E(shared.KindConflict, "username is already taken")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return User{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	role := defaultRole
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}

	id, err := s.repo.Create(ctx, req.Username, string(hash), role)
	if err != nil {
		return User{}, err
	}
	return s.repo.Get(ctx, id)
}

// Login validates credentials and issues a token. Unknown usernames and bad
// passwords produce the same message.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return LoginResponse{}, shared.ErrInvalidCredentials
		}
		return LoginResponse{}, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, shared.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResponse{User: user, Token: token}, nil
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(user User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})
	return token.SignedString(s.jwtSecret)
}
