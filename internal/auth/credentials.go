package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/snejhirpara/tiffin-tracker/internal/config"
	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

// CredentialService owns every password and token operation, keeping the
// persistence models free of security behavior.
type CredentialService struct {
	cfg *config.Config
}

func NewCredentialService(cfg *config.Config) *CredentialService {
	return &CredentialService{cfg: cfg}
}

// --------- Passwords ---------

func (s *CredentialService) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *CredentialService) CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// --------- Tokens ---------

func (s *CredentialService) GenerateAccessToken(u *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"email":    u.Email,
		"username": u.Username,
		"role":     u.Role,
		"exp":      now.Add(s.cfg.AccessTokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTAccessSecret))
}

func (s *CredentialService) GenerateRefreshToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(s.cfg.RefreshTokenTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTRefreshSecret))
}
