package domain

import "time"

type Gender string

const (
	GenderMale      Gender = "MALE"
	GenderFemale    Gender = "FEMALE"
	GenderNonBinary Gender = "NON_BINARY"
	GenderOther     Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary, GenderOther:
		return true
	}
	return false
}

type Profile struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	FirstName   string    `json:"firstName" db:"first_name"`
	LastName    *string   `json:"lastName,omitempty" db:"last_name"`
	DateOfBirth time.Time `json:"dateOfBirth" db:"date_of_birth"`
	Gender      Gender    `json:"gender" db:"gender"`
	Bio         *string   `json:"bio,omitempty" db:"bio"`
	Occupation  *string   `json:"occupation,omitempty" db:"occupation"`
	Education   *string   `json:"education,omitempty" db:"education"`
	Interests   []string  `json:"interests" db:"interests"`
	Latitude    *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64  `json:"longitude,omitempty" db:"longitude"`
	Photos      []Photo   `json:"photos"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Age is always derived from the date of birth at evaluation time; it is
// never stored, so it cannot go stale.
func (p *Profile) Age() int {
	return AgeAt(p.DateOfBirth, time.Now())
}

// AgeAt returns completed years between dob and now: a birthday not yet
// reached this year subtracts one.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

type Photo struct {
	ID         string    `json:"id" db:"id"`
	ProfileID  string    `json:"profileId" db:"profile_id"`
	URL        string    `json:"url" db:"url"`
	StorageKey string    `json:"storageKey" db:"storage_key"`
	IsPrimary  bool      `json:"isPrimary" db:"is_primary"`
	Position   int       `json:"position" db:"position"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
