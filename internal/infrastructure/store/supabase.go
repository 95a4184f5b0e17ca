package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dooza/social-signups-api/internal/domain/entities"
	"github.com/dooza/social-signups-api/internal/domain/repositories"
	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

const signupsTable = "social_signups"

// SupabaseStore talks to the hosted social_signups table over the
// Supabase REST API. It satisfies repositories.ISignupRepository so the
// use cases cannot tell it apart from the Postgres backend.
type SupabaseStore struct {
	client *supabase.Client
}

func NewSupabaseStore(url, anonKey string) (*SupabaseStore, error) {
	client, err := supabase.NewClient(url, anonKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &SupabaseStore{client: client}, nil
}

// insertRow mirrors the table columns the API is allowed to write. The
// id and created_at defaults stay with the database.
type insertRow struct {
	Email        string                `json:"email"`
	SignupSource string                `json:"signup_source"`
	UtmSource    *string               `json:"utm_source"`
	UtmMedium    *string               `json:"utm_medium"`
	UtmCampaign  *string               `json:"utm_campaign"`
	Referrer     *string               `json:"referrer"`
	IPAddress    string                `json:"ip_address"`
	UserAgent    string                `json:"user_agent"`
	Status       entities.SignupStatus `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
}

func (s *SupabaseStore) Create(_ context.Context, signup *entities.SocialSignup) error {
	row := insertRow{
		Email:        signup.Email,
		SignupSource: signup.SignupSource,
		UtmSource:    signup.UtmSource,
		UtmMedium:    signup.UtmMedium,
		UtmCampaign:  signup.UtmCampaign,
		Referrer:     signup.Referrer,
		IPAddress:    signup.IPAddress,
		UserAgent:    signup.UserAgent,
		Status:       signup.Status,
		CreatedAt:    signup.CreatedAt,
	}

	var inserted []entities.SocialSignup
	_, err := s.client.From(signupsTable).
		Insert(row, false, "", "representation", "exact").
		ExecuteTo(&inserted)
	if err != nil {
		return fmt.Errorf("supabase insert failed: %w", err)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("supabase insert returned no representation")
	}

	*signup = inserted[0]
	return nil
}

func (s *SupabaseStore) FindAll(_ context.Context) ([]entities.SocialSignup, error) {
	signups := []entities.SocialSignup{}
	_, err := s.client.From(signupsTable).
		Select("*", "exact", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&signups)
	if err != nil {
		return nil, fmt.Errorf("supabase select failed: %w", err)
	}
	return signups, nil
}

func (s *SupabaseStore) Count(_ context.Context) (int64, error) {
	_, count, err := s.client.From(signupsTable).
		Select("*", "exact", true).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("supabase count failed: %w", err)
	}
	return count, nil
}

func (s *SupabaseStore) UpdateStatus(_ context.Context, id uuid.UUID, status entities.SignupStatus) (*entities.SocialSignup, error) {
	patch := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}

	var updated []entities.SocialSignup
	_, err := s.client.From(signupsTable).
		Update(patch, "representation", "exact").
		Eq("id", id.String()).
		ExecuteTo(&updated)
	if err != nil {
		return nil, fmt.Errorf("supabase update failed: %w", err)
	}
	if len(updated) == 0 {
		return nil, repositories.ErrSignupNotFound
	}

	return &updated[0], nil
}

// DeleteAll removes every row. PostgREST refuses an unfiltered delete,
// so the filter matches everything except the nil uuid, which no row
// ever carries.
func (s *SupabaseStore) DeleteAll(_ context.Context) error {
	_, _, err := s.client.From(signupsTable).
		Delete("", "exact").
		Neq("id", uuid.Nil.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("supabase delete failed: %w", err)
	}
	return nil
}
