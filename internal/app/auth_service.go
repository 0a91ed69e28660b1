package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"referral-system/internal/model"
	"referral-system/internal/pkg/jwtutil"
	"referral-system/internal/pkg/referralcode"
	"referral-system/internal/repository"
)

var (
	ErrMissingRegisterField = errors.New("please provide username, email, and password")
	ErrMissingLoginField    = errors.New("please provide email and password")
	ErrEmailExists          = errors.New("user with this email already exists")
	ErrInvalidCredential    = errors.New("invalid email or password")
)

// codeGenAttempts bounds the retry loop for referral code collisions. The code
// space is 36^6, so a second attempt is already rare.
const codeGenAttempts = 5

type AuthService struct {
	userRepo     *repository.UserRepository
	verifier     CredentialVerifier
	jwtSecret    string
	tokenExpiry  time.Duration
	codeValidFor time.Duration
}

type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	ReferralCode string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewAuthService(userRepo *repository.UserRepository, verifier CredentialVerifier, jwtSecret string, tokenExpiry, codeValidFor time.Duration) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		verifier:     verifier,
		jwtSecret:    jwtSecret,
		tokenExpiry:  tokenExpiry,
		codeValidFor: codeValidFor,
	}
}

// Register creates a user with a fresh referral code and, when the supplied
// referral code matches an existing user, links the new user to the referrer.
// An unrecognized referral code is ignored rather than rejected.
func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	if username == "" || email == "" || password == "" {
		return nil, ErrMissingRegisterField
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	stored, err := s.verifier.Seal(password)
	if err != nil {
		return nil, err
	}

	code, err := s.newReferralCode()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:           username,
		Email:              email,
		Password:           stored,
		ReferralCode:       code,
		ReferralValidUntil: time.Now().UTC().Add(s.codeValidFor),
	}

	if supplied := strings.TrimSpace(input.ReferralCode); supplied != "" {
		referrer, err := s.userRepo.GetByReferralCode(supplied)
		if err != nil {
			return nil, err
		}
		if referrer != nil {
			user.ReferredBy = &referrer.ID
		}
	}

	if err := s.userRepo.Create(user); err != nil {
		// The store's unique index decides races that the email check above
		// cannot see.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues an access token whose subject is the
// user's id.
func (s *AuthService) Login(input LoginInput) (string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password
	if email == "" || password == "" {
		return "", ErrMissingLoginField
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil || !s.verifier.Verify(user.Password, password) {
		return "", ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.tokenExpiry, user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *AuthService) newReferralCode() (string, error) {
	for i := 0; i < codeGenAttempts; i++ {
		code, err := referralcode.New()
		if err != nil {
			return "", err
		}
		taken, err := s.userRepo.GetByReferralCode(code)
		if err != nil {
			return "", err
		}
		if taken == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("generate unique referral code failed after %d attempts", codeGenAttempts)
}
