package handlers

import (
	"fmt"

	"github.com/dooza/social-signups-api/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	statsUseCase *usecases.StatsUseCase
}

func NewStatsHandler(statsUseCase *usecases.StatsUseCase) *StatsHandler {
	return &StatsHandler{
		statsUseCase: statsUseCase,
	}
}

func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.statsUseCase.GetStats(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	message := "Database ready - no signups yet."
	if stats.Total > 0 {
		message = fmt.Sprintf("Live stats: %d total signups (%d today, %d this week)",
			stats.Total, stats.Today, stats.Week)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats,
		"message": message,
	})
}
