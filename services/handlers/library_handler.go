package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillbites-ai/bites_api/shared"
)

type LibraryHandler struct {
	librarySvc LibraryServiceInterface
	stateSvc   StateServiceInterface
}

func NewLibraryHandler(librarySvc LibraryServiceInterface, stateSvc StateServiceInterface) *LibraryHandler {
	return &LibraryHandler{
		librarySvc: librarySvc,
		stateSvc:   stateSvc,
	}
}

// @Summary Get Drills
// @Description This endpoint returns the built-in quick-drill catalog
// @Tags library
// @Accept  json
// @Produce json
// @Success 200
// @Router /api/v1/drills [get]
func (h *LibraryHandler) GetDrills(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", h.librarySvc.Drills())
}

// @Summary Search
// @Description This endpoint searches the session's plan lessons and the drill catalog by title and description
// @Tags library
// @Accept  json
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} shared.Response{data=dto.SearchResponse}
// @Router /api/v1/search [get]
func (h *LibraryHandler) Search(c *fiber.Ctx) error {
	plan := h.stateSvc.GetPlan(sessionID(c))
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", h.librarySvc.Search(plan, c.Query("q")))
}
