package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillbites-ai/bites_api/dto"
	"github.com/skillbites-ai/bites_api/shared"
)

type StateHandler struct {
	stateSvc      StateServiceInterface
	navigationSvc NavigationServiceInterface
}

func NewStateHandler(stateSvc StateServiceInterface, navigationSvc NavigationServiceInterface) *StateHandler {
	return &StateHandler{
		stateSvc:      stateSvc,
		navigationSvc: navigationSvc,
	}
}

// @Summary Get State
// @Description This endpoint returns the session's full sanitized state snapshot: user, plan, view, active lesson, legal flag and theme
// @Tags state
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.StateSnapshot}
// @Router /api/v1/state [get]
func (h *StateHandler) GetState(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", h.stateSvc.Snapshot(sessionID(c)))
}

// @Summary Navigate
// @Description This endpoint moves the session to the target view when its data allows the transition
// @Tags state
// @Accept  json
// @Produce json
// @Param navigateRequest body dto.NavigateRequest true "Navigate request"
// @Success 200 {object} shared.Response{data=dto.NavigateResponse}
// @Router /api/v1/navigate [post]
func (h *StateHandler) Navigate(c *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.navigationSvc.Navigate(sessionID(c), req.View)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Accept Legal Terms
// @Description This endpoint records the session's acceptance of the legal terms
// @Tags state
// @Accept  json
// @Produce json
// @Success 200
// @Router /api/v1/legal/accept [post]
func (h *StateHandler) AcceptLegal(c *fiber.Ctx) error {
	h.stateSvc.SetLegalAccepted(sessionID(c), true)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", fiber.Map{"legal_accepted": true})
}

// @Summary Set Theme
// @Description This endpoint switches the session's theme between light and dark
// @Tags state
// @Accept  json
// @Produce json
// @Param setThemeRequest body dto.SetThemeRequest true "Set theme request"
// @Success 200
// @Router /api/v1/theme [put]
func (h *StateHandler) SetTheme(c *fiber.Ctx) error {
	var req dto.SetThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	h.stateSvc.SetTheme(sessionID(c), req.Theme)
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", fiber.Map{"theme": req.Theme})
}
