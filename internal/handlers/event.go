// internal/handlers/event.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/inklight/bookip-backend/internal/services"
	"github.com/inklight/bookip-backend/internal/utils"
)

type EventHandler struct {
	admin *services.AdminService
}

func NewEventHandler(admin *services.AdminService) *EventHandler {
	return &EventHandler{admin: admin}
}

// ListEvents handles GET /api/v1/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	events, total, err := h.admin.ListEvents(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(events, total, params))
}
