package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/skillbites-ai/bites_api/dto"
	"github.com/skillbites-ai/bites_api/model"
	"github.com/skillbites-ai/bites_api/shared"
)

// ProgressService drives the lesson lifecycle: selection under sequential
// unlock, completion with streak and history bookkeeping, and in-lesson
// updates (notes, step, difficulty rating).
type ProgressService struct {
	context.DefaultService

	stateSvc   *StateService
	librarySvc *LibraryService

	now func() time.Time
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *context.Context) error {
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.stateSvc = svc.Service(STATE_SVC).(*StateService)
	svc.librarySvc = svc.Service(LIBRARY_SVC).(*LibraryService)
	return nil
}

// SelectLesson makes a lesson active and routes to the matching view.
// Plan lessons honor sequential unlock; built-in drills are always open.
func (svc *ProgressService) SelectLesson(sessionID, lessonID string) (*dto.SelectLessonResponse, error) {
	plan := svc.stateSvc.GetPlan(sessionID)

	var lesson *model.Lesson
	if plan != nil {
		found, idx := plan.FindLesson(lessonID)
		if found != nil {
			if plan.LessonLocked(idx) {
				return nil, shared.NewForbiddenError(errors.New("lesson locked"), "Complete the previous lesson first")
			}
			lesson = found
		}
	}
	if lesson == nil {
		lesson = svc.librarySvc.FindDrill(lessonID)
	}
	if lesson == nil {
		return nil, shared.NewNotFoundError(errors.New("lesson not found: "+lessonID), "Lesson not found")
	}

	view := shared.ViewLesson
	if lesson.Type == shared.LessonTypeQuickDrill {
		view = shared.ViewDrill
	}

	svc.stateSvc.SetActiveLessonID(sessionID, lesson.ID)
	svc.stateSvc.SetView(sessionID, view)

	return &dto.SelectLessonResponse{View: view, Lesson: *lesson}, nil
}

// CompleteLesson marks the lesson done and advances the streak. Streaks
// count calendar days: completing twice on one day changes nothing, a
// completion the day after the last one extends the streak, anything
// later restarts it at 1. The day also lands in the activity history,
// at most once.
//
// Catalog drills complete too: they tick the streak and history but have
// no plan row to flip, so the plan is left untouched.
//
// Plan and user are written as two separate slot writes; a crash between
// them leaves a completed lesson without the streak tick, which the next
// completion repairs.
func (svc *ProgressService) CompleteLesson(sessionID, lessonID string) (*dto.CompleteLessonResponse, error) {
	plan := svc.stateSvc.GetPlan(sessionID)

	var lesson *model.Lesson
	idx := -1
	if plan != nil {
		lesson, idx = plan.FindLesson(lessonID)
	}
	if lesson != nil {
		if plan.LessonLocked(idx) {
			return nil, shared.NewForbiddenError(errors.New("lesson locked"), "Complete the previous lesson first")
		}
	} else if svc.librarySvc.FindDrill(lessonID) == nil {
		return nil, shared.NewNotFoundError(errors.New("lesson not found: "+lessonID), "Lesson not found")
	}

	user := svc.stateSvc.GetUser(sessionID)

	today := svc.now().Format(shared.DateLayout)
	if user.LastLessonDate != today {
		yesterday := svc.now().AddDate(0, 0, -1).Format(shared.DateLayout)
		if user.LastLessonDate == yesterday {
			user.Streak++
		} else {
			user.Streak = 1
		}
		user.LastLessonDate = today
	}

	if !containsDay(user.History, today) {
		user.History = append(user.History, today)
	}

	if lesson != nil {
		lesson.IsCompleted = true
		svc.stateSvc.SavePlan(sessionID, plan)
	}
	svc.stateSvc.SaveUser(sessionID, user)

	view := shared.ViewPlan
	if plan == nil {
		view = shared.ViewLanding
	}
	svc.stateSvc.SetView(sessionID, view)
	svc.stateSvc.ClearActiveLesson(sessionID)

	log.WithFields(log.Fields{
		"session_id": sessionID,
		"lesson_id":  lessonID,
		"streak":     user.Streak,
	}).Info("Lesson completed")

	return &dto.CompleteLessonResponse{Plan: plan, User: user}, nil
}

// UpdateLesson applies partial in-lesson edits without touching
// completion state.
func (svc *ProgressService) UpdateLesson(sessionID, lessonID string, req dto.UpdateLessonRequest) (*model.Lesson, error) {
	plan := svc.stateSvc.GetPlan(sessionID)
	if plan == nil {
		return nil, shared.NewNotFoundError(errors.New("no plan"), "No plan found for this session")
	}

	lesson, _ := plan.FindLesson(lessonID)
	if lesson == nil {
		return nil, shared.NewNotFoundError(errors.New("lesson not found: "+lessonID), "Lesson not found")
	}

	if req.Notes != nil {
		lesson.Notes = *req.Notes
	}
	if req.CurrentStep != nil {
		lesson.CurrentStep = *req.CurrentStep
	}
	if req.DifficultyRating != nil {
		lesson.DifficultyRating = *req.DifficultyRating
	}

	svc.stateSvc.SavePlan(sessionID, plan)
	return lesson, nil
}

// Certificate issues a completion certificate once every lesson in the
// plan is done.
func (svc *ProgressService) Certificate(sessionID string) (*dto.CertificateResponse, error) {
	plan := svc.stateSvc.GetPlan(sessionID)
	if plan == nil {
		return nil, shared.NewNotFoundError(errors.New("no plan"), "No plan found for this session")
	}
	if !plan.AllCompleted() {
		return nil, shared.NewConflictError(errors.New("plan not finished"), "Complete every lesson to earn your certificate")
	}

	user := svc.stateSvc.GetUser(sessionID)

	shareText := fmt.Sprintf("🎓 I just completed %q on SkillBites AI! %d-day streak and counting 🔥", plan.Title, user.Streak)
	shareURL := fmt.Sprintf("https://skillbites.ai/shared/certificate/%s", plan.ID)

	return &dto.CertificateResponse{
		Recipient:   user.Name,
		PlanTitle:   plan.Title,
		CompletedOn: svc.now().Format(shared.DateLayout),
		ShareText:   shareText,
		ShareURL:    shareURL,
		Platforms:   []string{"facebook", "instagram", "tiktok", "twitter"},
	}, nil
}

func containsDay(history []string, day string) bool {
	for _, d := range history {
		if d == day {
			return true
		}
	}
	return false
}
