package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/dooza/social-signups-api/internal/domain/entities"
	"github.com/dooza/social-signups-api/internal/domain/repositories"
	"github.com/dooza/social-signups-api/internal/infrastructure/cache"
	"github.com/google/uuid"
)

// DefaultSignupSource is recorded when the caller supplies no
// attribution tag of its own.
const DefaultSignupSource = "doozasocial_api"

var (
	// ErrInvalidEmail rejects a missing email or one without an "@".
	// Validation is deliberately permissive beyond that.
	ErrInvalidEmail = errors.New("valid email address is required")

	// ErrInvalidStatus rejects statuses outside pending/verified/active.
	ErrInvalidStatus = errors.New("status must be one of pending, verified, active")
)

// ProducerHandler publishes signup events to the message broker.
type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}

// SignupInput is the candidate payload plus the ambient request
// metadata captured at the HTTP boundary.
type SignupInput struct {
	Email       string
	UtmSource   *string
	UtmMedium   *string
	UtmCampaign *string
	Referrer    *string

	UserAgent     string
	IPAddress     string
	RefererHeader string
}

type SignupUseCase struct {
	signupRepo repositories.ISignupRepository
	producer   ProducerHandler
	statsCache *cache.Cache
}

func NewSignupUseCase(signupRepo repositories.ISignupRepository, producer ProducerHandler, statsCache *cache.Cache) *SignupUseCase {
	return &SignupUseCase{
		signupRepo: signupRepo,
		producer:   producer,
		statsCache: statsCache,
	}
}

// Ingest validates and normalizes a signup request, enriches it with
// request metadata and writes exactly one record. Duplicate emails
// produce duplicate records; the funnel has no uniqueness constraint.
func (uc *SignupUseCase) Ingest(ctx context.Context, input SignupInput) (*entities.SocialSignup, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	userAgent := input.UserAgent
	if userAgent == "" {
		userAgent = "unknown"
	}
	ipAddress := input.IPAddress
	if ipAddress == "" {
		ipAddress = "unknown"
	}

	referrer := input.Referrer
	if referrer == nil && input.RefererHeader != "" {
		header := input.RefererHeader
		referrer = &header
	}

	signup := &entities.SocialSignup{
		Email:        email,
		SignupSource: DefaultSignupSource,
		UtmSource:    input.UtmSource,
		UtmMedium:    input.UtmMedium,
		UtmCampaign:  input.UtmCampaign,
		Referrer:     referrer,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		Status:       entities.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.signupRepo.Create(ctx, signup); err != nil {
		return nil, err
	}

	log.Printf("New signup saved: %s at %s", signup.Email, signup.CreatedAt.Format(time.RFC3339))

	uc.invalidateStats()
	uc.publishCreated(signup)

	return signup, nil
}

// List returns every signup, newest first.
func (uc *SignupUseCase) List(ctx context.Context) ([]entities.SocialSignup, error) {
	return uc.signupRepo.FindAll(ctx)
}

// SetStatus moves a signup to any of the three statuses. There is no
// ordering constraint; the admin surface may verify or activate a
// record regardless of its current state.
func (uc *SignupUseCase) SetStatus(ctx context.Context, id uuid.UUID, status entities.SignupStatus) (*entities.SocialSignup, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	signup, err := uc.signupRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	uc.invalidateStats()
	return signup, nil
}

// Clear deletes every signup and returns how many rows existed right
// before the delete. A record inserted between the two store calls is
// deleted but not counted; acceptable for an admin utility.
func (uc *SignupUseCase) Clear(ctx context.Context) (int64, error) {
	count, err := uc.signupRepo.Count(ctx)
	if err != nil {
		return 0, err
	}

	if err := uc.signupRepo.DeleteAll(ctx); err != nil {
		return 0, err
	}

	log.Printf("Deleted %d signup records", count)

	uc.invalidateStats()
	return count, nil
}

func (uc *SignupUseCase) invalidateStats() {
	if uc.statsCache != nil {
		uc.statsCache.Delete(statsCacheKey)
	}
}

// signupCreatedEvent is the payload published to the broker after a
// successful ingestion.
type signupCreatedEvent struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	SignupSource string    `json:"signup_source"`
	CreatedAt    time.Time `json:"created_at"`
}

func (uc *SignupUseCase) publishCreated(signup *entities.SocialSignup) {
	if uc.producer == nil {
		return
	}

	payload, err := json.Marshal(signupCreatedEvent{
		ID:           signup.ID,
		Email:        signup.Email,
		SignupSource: signup.SignupSource,
		CreatedAt:    signup.CreatedAt,
	})
	if err != nil {
		log.Printf("failed to marshal signup event: %v", err)
		return
	}

	// Publish failures never fail ingestion
	if err := uc.producer.PublishMessage([]byte(signup.Email), payload); err != nil {
		log.Printf("failed to publish signup event: %v", err)
	}
}
