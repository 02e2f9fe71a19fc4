package profiles

import (
	"errors"
	"strings"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is the stored athlete profile.
type Profile struct {
	AthleteID string
	FirstName string
	LastName  string
	Status    string
	Email     *string
	Timezone  *string
	AvatarURL *string
	UpdatedAt time.Time
}

// ProfileDto is the API shape of a profile.
type ProfileDto struct {
	AthleteID string    `json:"athleteId"`
	FullName  string    `json:"fullName"`
	Status    string    `json:"status"`
	Email     *string   `json:"email"`
	Timezone  *string   `json:"timezone"`
	AvatarURL *string   `json:"avatarUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p Profile) Dto() ProfileDto {
	return ProfileDto{
		AthleteID: p.AthleteID,
		FullName:  strings.TrimSpace(p.FirstName + " " + p.LastName),
		Status:    p.Status,
		Email:     p.Email,
		Timezone:  p.Timezone,
		AvatarURL: p.AvatarURL,
		UpdatedAt: p.UpdatedAt,
	}
}
