package entities

import (
	"time"

	"github.com/google/uuid"
)

// SignupStatus tracks how far a captured lead has progressed.
type SignupStatus string

const (
	StatusPending  SignupStatus = "pending"
	StatusVerified SignupStatus = "verified"
	StatusActive   SignupStatus = "active"
)

// IsValid reports whether s is one of the three known statuses.
func (s SignupStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusActive:
		return true
	}
	return false
}

// SocialSignup is one captured email-collection event with its
// marketing attribution and lifecycle metadata.
type SocialSignup struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string       `json:"email" gorm:"column:email;type:text;not null"`
	SignupSource string       `json:"signup_source" gorm:"column:signup_source;type:text"`
	UtmSource    *string      `json:"utm_source" gorm:"column:utm_source;type:text"`
	UtmMedium    *string      `json:"utm_medium" gorm:"column:utm_medium;type:text"`
	UtmCampaign  *string      `json:"utm_campaign" gorm:"column:utm_campaign;type:text"`
	Referrer     *string      `json:"referrer" gorm:"column:referrer;type:text"`
	IPAddress    string       `json:"ip_address" gorm:"column:ip_address;type:text"`
	UserAgent    string       `json:"user_agent" gorm:"column:user_agent;type:text"`
	Status       SignupStatus `json:"status" gorm:"column:status;type:text;default:pending"`
	CreatedAt    time.Time    `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty" gorm:"column:updated_at;autoUpdateTime:false"`
}

func (SocialSignup) TableName() string {
	return "social_signups"
}

// SignupStats is the aggregate summary rendered on the admin dashboard.
type SignupStats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	Week     int `json:"week"`
	Pending  int `json:"pending"`
	Verified int `json:"verified"`
	Active   int `json:"active"`
}
