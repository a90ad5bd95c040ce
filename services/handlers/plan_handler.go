package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillbites-ai/bites_api/dto"
	"github.com/skillbites-ai/bites_api/shared"
)

type PlanHandler struct {
	generatorSvc  GeneratorServiceInterface
	stateSvc      StateServiceInterface
	progressSvc   ProgressServiceInterface
	monitoringSvc MonitoringServiceInterface
}

func NewPlanHandler(generatorSvc GeneratorServiceInterface, stateSvc StateServiceInterface, progressSvc ProgressServiceInterface, monitoringSvc MonitoringServiceInterface) *PlanHandler {
	return &PlanHandler{
		generatorSvc:  generatorSvc,
		stateSvc:      stateSvc,
		progressSvc:   progressSvc,
		monitoringSvc: monitoringSvc,
	}
}

// @Summary Generate Plan
// @Description This endpoint generates a new learning plan for the session's goal and installs it, replacing any existing plan
// @Tags plan
// @Accept  json
// @Produce json
// @Param generatePlanRequest body dto.GeneratePlanRequest true "Generate plan request"
// @Success 200 {object} shared.Response{data=dto.PlanResponse}
// @Router /api/v1/plan/generate [post]
func (h *PlanHandler) GeneratePlan(c *fiber.Ctx) error {
	var req dto.GeneratePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	plan, err := h.generatorSvc.GeneratePlan(c.UserContext(), sessionID(c), req.Goal, req.Difficulty, req.ProgramType, req.TimeBudget)
	if err != nil {
		h.monitoringSvc.RecordPlanGenerated(req.ProgramType, "error")
		return err
	}
	if plan == nil {
		// The generated payload could not be repaired into a plan; the
		// session keeps whatever it had.
		h.monitoringSvc.RecordPlanGenerated(req.ProgramType, "dropped")
		return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.NewPlanResponse(nil))
	}

	h.monitoringSvc.RecordPlanGenerated(plan.ProgramType, "installed")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.NewPlanResponse(plan))
}

// @Summary Next Level
// @Description This endpoint regenerates the current plan at Advanced difficulty, replacing it wholesale
// @Tags plan
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.PlanResponse}
// @Router /api/v1/plan/next-level [post]
func (h *PlanHandler) NextLevel(c *fiber.Ctx) error {
	plan, err := h.generatorSvc.NextLevel(c.UserContext(), sessionID(c))
	if err != nil {
		return err
	}
	if plan == nil {
		return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.NewPlanResponse(nil))
	}

	h.monitoringSvc.RecordPlanGenerated(plan.ProgramType, "installed")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.NewPlanResponse(plan))
}

// @Summary Get Plan
// @Description This endpoint returns the session's current plan with the derived lock state of each lesson
// @Tags plan
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.PlanResponse}
// @Router /api/v1/plan [get]
func (h *PlanHandler) GetPlan(c *fiber.Ctx) error {
	plan := h.stateSvc.GetPlan(sessionID(c))
	if plan == nil {
		return shared.ResponseNotFound(c)
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.NewPlanResponse(plan))
}

// @Summary Get Certificate
// @Description This endpoint returns the completion certificate once every lesson in the plan is completed
// @Tags plan
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.CertificateResponse}
// @Router /api/v1/certificate [get]
func (h *PlanHandler) Certificate(c *fiber.Ctx) error {
	cert, err := h.progressSvc.Certificate(sessionID(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", cert)
}
