package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillbites-ai/bites_api/dto"
	"github.com/skillbites-ai/bites_api/shared"
)

type SessionHandler struct {
	sessionSvc SessionServiceInterface
}

func NewSessionHandler(sessionSvc SessionServiceInterface) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
	}
}

// @Summary Create or Resume Session
// @Description This endpoint creates a new session or resumes an existing one based on device ID, returning the session token and the repaired state snapshot
// @Tags session
// @Accept  json
// @Produce json
// @Param createSessionRequest body dto.CreateSessionRequest true "Create session request"
// @Success 200 {object} shared.Response{data=dto.CreateSessionResponse}
// @Router /api/v1/session [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.sessionSvc.CreateOrGetSession(req.DeviceID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Set User Name
// @Description This endpoint records the user's name from the landing page and routes the session to the goal form
// @Tags session
// @Accept  json
// @Produce json
// @Param setNameRequest body dto.SetNameRequest true "Set name request"
// @Success 200
// @Router /api/v1/user/name [put]
func (h *SessionHandler) SetName(c *fiber.Ctx) error {
	var req dto.SetNameRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	user, err := h.sessionSvc.SetName(sessionID(c), req.Name)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", user)
}

// @Summary Reset Session
// @Description This endpoint wipes the session's plan, progress and view state, restoring defaults. The theme survives.
// @Tags session
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.StateSnapshot}
// @Router /api/v1/reset [post]
func (h *SessionHandler) Reset(c *fiber.Ctx) error {
	snapshot, err := h.sessionSvc.Reset(sessionID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", snapshot)
}
