package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillbites-ai/bites_api/dto"
	"github.com/skillbites-ai/bites_api/shared"
)

type LessonHandler struct {
	progressSvc   ProgressServiceInterface
	monitoringSvc MonitoringServiceInterface
}

func NewLessonHandler(progressSvc ProgressServiceInterface, monitoringSvc MonitoringServiceInterface) *LessonHandler {
	return &LessonHandler{
		progressSvc:   progressSvc,
		monitoringSvc: monitoringSvc,
	}
}

// @Summary Select Lesson
// @Description This endpoint makes a lesson active and routes the session to the lesson or drill view. Locked lessons are refused.
// @Tags lesson
// @Accept  json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.SelectLessonResponse}
// @Router /api/v1/lessons/{lessonId}/select [post]
func (h *LessonHandler) SelectLesson(c *fiber.Ctx) error {
	resp, err := h.progressSvc.SelectLesson(sessionID(c), c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Complete Lesson
// @Description This endpoint marks a lesson completed, advances the streak and activity history, and routes the session back to the plan
// @Tags lesson
// @Accept  json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.CompleteLessonResponse}
// @Router /api/v1/lessons/{lessonId}/complete [post]
func (h *LessonHandler) CompleteLesson(c *fiber.Ctx) error {
	resp, err := h.progressSvc.CompleteLesson(sessionID(c), c.Params("lessonId"))
	if err != nil {
		return err
	}

	h.monitoringSvc.RecordLessonCompleted()
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Update Lesson
// @Description This endpoint applies partial in-lesson edits: notes, current step and difficulty rating
// @Tags lesson
// @Accept  json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Param updateLessonRequest body dto.UpdateLessonRequest true "Update lesson request"
// @Success 200
// @Router /api/v1/lessons/{lessonId} [patch]
func (h *LessonHandler) UpdateLesson(c *fiber.Ctx) error {
	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	lesson, err := h.progressSvc.UpdateLesson(sessionID(c), c.Params("lessonId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lesson)
}
