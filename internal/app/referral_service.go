package app

import (
	"referral-system/internal/model"
	"referral-system/internal/repository"
)

type ReferralService struct {
	userRepo *repository.UserRepository
}

func NewReferralService(userRepo *repository.UserRepository) *ReferralService {
	return &ReferralService{userRepo: userRepo}
}

// ListReferrals returns the users referred by userID. There is no existence
// check on the id; an unknown referrer simply has no referrals.
func (s *ReferralService) ListReferrals(userID uint) ([]model.User, error) {
	return s.userRepo.ListReferredBy(userID)
}
