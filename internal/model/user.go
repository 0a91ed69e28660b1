package model

import "time"

// User is the only persisted entity. Username, email and referral code are
// unique at the store level. ReferralValidUntil is recorded at creation and
// never checked afterwards.
type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Username           string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email              string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password           string    `gorm:"size:100;not null" json:"-"`
	ReferralCode       string    `gorm:"size:6;uniqueIndex" json:"referral_code"`
	ReferralValidUntil time.Time `json:"referral_valid_until"`
	ReferredBy         *uint     `gorm:"index" json:"referred_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
