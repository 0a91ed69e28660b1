package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"referral-system/internal/model"
)

// ErrDuplicate marks a store-level unique constraint violation. Concurrent
// registrations with the same email race on the insert; the store lets exactly
// one through and the loser gets this error.
var ErrDuplicate = errors.New("duplicate record")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByReferralCode(code string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("referral_code = ?", code).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by referral code failed: %w", err)
	}
	return &user, nil
}

// ListReferredBy returns every user whose referred_by points at userID. An
// unknown id yields an empty slice, not an error.
func (r *UserRepository) ListReferredBy(userID uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.Where("referred_by = ?", userID).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("query referrals failed: %w", err)
	}
	return users, nil
}
