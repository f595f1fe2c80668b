package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const jwtExpDays = 365

// AuthService handles identity and session business logic
type AuthService struct {
	profiles  repository.ProfileStore
	couples   repository.CoupleStore
	jwtSecret string
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(profiles repository.ProfileStore, couples repository.CoupleStore, jwtSecret string) *AuthService {
	return &AuthService{
		profiles:  profiles,
		couples:   couples,
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
}

// SignUp registers a new profile and returns it with a session token
func (s *AuthService) SignUp(ctx context.Context, email, password, displayName string) (*models.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)

	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("email is invalid: %w", models.ErrValidation)
	}
	if len(password) < 8 {
		return nil, "", fmt.Errorf("password must be at least 8 characters: %w", models.ErrValidation)
	}
	if displayName == "" {
		return nil, "", fmt.Errorf("display name is required: %w", models.ErrValidation)
	}

	if _, _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, "", models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		ID:          uuid.New().String(),
		Email:       email,
		DisplayName: displayName,
		Role:        models.RolePending,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}

	if err := s.profiles.Create(ctx, profile, string(hash)); err != nil {
		return nil, "", fmt.Errorf("failed to create profile: %w", err)
	}

	token, err := s.GenerateJWT(profile.ID)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// SignIn verifies credentials and returns the profile with a session token
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	profile, hash, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(profile.ID)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// GenerateJWT generates a JWT token for a user
func (s *AuthService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     s.now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *AuthService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}

	return userID, nil
}

// ProfileBundle is the fetch-profile reconciliation result: the user's
// own profile plus, when paired, the couple and the partner profile.
type ProfileBundle struct {
	Profile *models.Profile `json:"profile"`
	Couple  *models.Couple  `json:"couple,omitempty"`
	Partner *models.Profile `json:"partner,omitempty"`
}

// FetchProfile loads the caller's profile and, if paired, the couple
// and the other profile referencing the same couple. Idempotent.
func (s *AuthService) FetchProfile(ctx context.Context, userID string) (*ProfileBundle, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	bundle := &ProfileBundle{Profile: profile}
	if profile.CoupleID == nil {
		return bundle, nil
	}

	couple, err := s.couples.GetByID(ctx, *profile.CoupleID)
	if err != nil {
		return nil, err
	}
	bundle.Couple = couple

	partner, err := s.profiles.GetPartner(ctx, *profile.CoupleID, userID)
	if err != nil {
		// Paired but alone: partner_a waiting for partner_b to join.
		if errors.Is(err, models.ErrNotFound) {
			return bundle, nil
		}
		return nil, err
	}
	bundle.Partner = partner
	return bundle, nil
}

// RequireCouple loads the caller's profile and fails with ErrNotPaired
// when the caller does not belong to a couple yet.
func (s *AuthService) RequireCouple(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.CoupleID == nil {
		return nil, models.ErrNotPaired
	}
	return profile, nil
}

// Partner returns the other profile in the couple, or nil when the
// caller is still waiting for one.
func (s *AuthService) Partner(ctx context.Context, coupleID, userID string) (*models.Profile, error) {
	partner, err := s.profiles.GetPartner(ctx, coupleID, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return partner, nil
}

// UpdatePushToken stores or clears the caller's device push token
func (s *AuthService) UpdatePushToken(ctx context.Context, userID string, pushToken *string) error {
	return s.profiles.UpdatePushToken(ctx, userID, pushToken)
}
