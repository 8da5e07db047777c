package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/socialpicture/backend/internal/models"
	"github.com/socialpicture/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long issued tokens stay valid.
const tokenTTL = 72 * time.Hour

// AuthResponse carries the issued token and the authenticated user.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// AuthService handles registration and login, issuing signed HS256
// tokens carrying the user's id, email and role.
type AuthService struct {
	users     repositories.UserRepository
	jwtSecret string
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{users: userRepo, jwtSecret: jwtSecret}
}

// Register creates a new account with a unique username and email and
// returns a token for it. The first password is bcrypt-hashed before it
// touches the store.
func (s *AuthService) Register(req models.RegisterRequest) (*AuthResponse, error) {
	if _, err := s.users.GetUserByUsername(req.Username); err == nil {
		return nil, fmt.Errorf("%w: username is already taken", ErrInvalidOperation)
	} else if !isRecordNotFound(err) {
		return nil, err
	}
	if _, err := s.users.GetUserByEmail(req.Email); err == nil {
		return nil, fmt.Errorf("%w: email is already in use", ErrInvalidOperation)
	} else if !isRecordNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Fullname: req.Fullname,
		Role:     models.RoleUser,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: *user}, nil
}

// Login verifies the credentials and returns a token. Unknown usernames
// and wrong passwords produce the same error.
func (s *AuthService) Login(req models.LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetUserByUsername(req.Username)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: *user}, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
