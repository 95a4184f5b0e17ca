package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/dooza/social-signups-api/internal/application/usecases"
	"github.com/dooza/social-signups-api/internal/domain/entities"
	"github.com/dooza/social-signups-api/internal/domain/repositories"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SignupHandler struct {
	signupUseCase *usecases.SignupUseCase
}

func NewSignupHandler(signupUseCase *usecases.SignupUseCase) *SignupHandler {
	return &SignupHandler{
		signupUseCase: signupUseCase,
	}
}

type createSignupRequest struct {
	Email       string  `json:"email"`
	UtmSource   *string `json:"utm_source"`
	UtmMedium   *string `json:"utm_medium"`
	UtmCampaign *string `json:"utm_campaign"`
	Referrer    *string `json:"referrer"`
}

func (h *SignupHandler) CreateSignup(c *fiber.Ctx) error {
	var req createSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	input := usecases.SignupInput{
		Email:       req.Email,
		UtmSource:   req.UtmSource,
		UtmMedium:   req.UtmMedium,
		UtmCampaign: req.UtmCampaign,
		Referrer:    req.Referrer,

		UserAgent:     c.Get("User-Agent"),
		IPAddress:     clientIP(c),
		RefererHeader: c.Get("Referer"),
	}

	signup, err := h.signupUseCase.Ingest(c.Context(), input)
	if err != nil {
		if errors.Is(err, usecases.ErrInvalidEmail) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Valid email address is required",
			})
		}
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   "Signup saved successfully",
		"id":        signup.ID,
		"email":     signup.Email,
		"timestamp": signup.CreatedAt,
	})
}

func (h *SignupHandler) GetSignups(c *fiber.Ctx) error {
	signups, err := h.signupUseCase.List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	message := "No signups yet. Ready to collect signups!"
	if len(signups) > 0 {
		message = fmt.Sprintf("%d signups retrieved", len(signups))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"signups": signups,
		"total":   len(signups),
		"message": message,
	})
}

func (h *SignupHandler) ClearSignups(c *fiber.Ctx) error {
	deleted, err := h.signupUseCase.Clear(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"deletedCount": deleted,
		"message":      fmt.Sprintf("Successfully deleted %d signup records", deleted),
	})
}

type updateStatusRequest struct {
	Status entities.SignupStatus `json:"status"`
}

func (h *SignupHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid signup id",
		})
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	signup, err := h.signupUseCase.SetStatus(c.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, usecases.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		case errors.Is(err, repositories.ErrSignupNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Signup not found",
			})
		default:
			return internalError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"signup":  signup,
	})
}

// clientIP prefers the proxy headers the serverless platform sets; the
// raw value is recorded as-is, never validated.
func clientIP(c *fiber.Ctx) string {
	if ip := c.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return c.Get("X-Real-IP")
}

// internalError logs the store failure and flattens it to a fixed
// message; no detail leaks to the caller.
func internalError(c *fiber.Ctx, err error) error {
	log.Printf("API Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Internal server error",
	})
}
