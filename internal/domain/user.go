package domain

import "time"

type User struct {
	ID          string     `json:"id" db:"id"`
	PhoneNumber string     `json:"phoneNumber" db:"phone_number"`
	IsVerified  bool       `json:"isVerified" db:"is_verified"`
	IsPremium   bool       `json:"isPremium" db:"is_premium"`
	LastSeenAt  *time.Time `json:"lastSeenAt,omitempty" db:"last_seen_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
