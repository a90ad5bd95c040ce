package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/skillbites-ai/bites_api/dto"
	"github.com/skillbites-ai/bites_api/model"
	"github.com/skillbites-ai/bites_api/shared"
)

type SessionServiceInterface interface {
	CreateOrGetSession(deviceID string) (*dto.CreateSessionResponse, error)
	SetName(sessionID, name string) (model.User, error)
	Reset(sessionID string) (*dto.StateSnapshot, error)
}

type StateServiceInterface interface {
	Snapshot(sessionID string) *dto.StateSnapshot
	GetPlan(sessionID string) *model.Plan
	LegalAccepted(sessionID string) bool
	SetLegalAccepted(sessionID string, accepted bool)
	SetTheme(sessionID, theme string)
}

type GeneratorServiceInterface interface {
	GeneratePlan(ctx context.Context, sessionID, goal, difficulty, programType, timeBudget string) (*model.Plan, error)
	NextLevel(ctx context.Context, sessionID string) (*model.Plan, error)
}

type NavigationServiceInterface interface {
	Navigate(sessionID, targetView string) (*dto.NavigateResponse, error)
}

type ProgressServiceInterface interface {
	SelectLesson(sessionID, lessonID string) (*dto.SelectLessonResponse, error)
	CompleteLesson(sessionID, lessonID string) (*dto.CompleteLessonResponse, error)
	UpdateLesson(sessionID, lessonID string, req dto.UpdateLessonRequest) (*model.Lesson, error)
	Certificate(sessionID string) (*dto.CertificateResponse, error)
}

type LibraryServiceInterface interface {
	Drills() []model.Lesson
	Search(plan *model.Plan, query string) *dto.SearchResponse
}

type MonitoringServiceInterface interface {
	RecordPlanGenerated(programType, outcome string)
	RecordLessonCompleted()
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(shared.SessionID).(string)
	return id
}
