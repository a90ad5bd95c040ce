package services

import (
	"errors"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/skillbites-ai/bites_api/dto"
	"github.com/skillbites-ai/bites_api/model"
	"github.com/skillbites-ai/bites_api/shared"
)

// NavigationService owns the view state machine. Views form a small fixed
// set; transitions are validated against what the session's data can
// actually support, and a repair pass runs on every session resume to fix
// dangling references left by older writes.
type NavigationService struct {
	context.DefaultService

	stateSvc   *StateService
	librarySvc *LibraryService
}

const NAVIGATION_SVC = "navigation_svc"

func (svc NavigationService) Id() string {
	return NAVIGATION_SVC
}

func (svc *NavigationService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *NavigationService) Start() error {
	svc.stateSvc = svc.Service(STATE_SVC).(*StateService)
	svc.librarySvc = svc.Service(LIBRARY_SVC).(*LibraryService)
	return nil
}

// lessonResolves reports whether an active lesson id points at something
// the session can actually show: a plan lesson or a catalog drill.
func (svc *NavigationService) lessonResolves(plan *model.Plan, lessonID string) bool {
	if plan != nil {
		if lesson, _ := plan.FindLesson(lessonID); lesson != nil {
			return true
		}
	}
	return svc.librarySvc.FindDrill(lessonID) != nil
}

// Navigate moves the session to the target view when its data allows it.
// Landing doubles as "home": reaching it drops the active lesson.
func (svc *NavigationService) Navigate(sessionID, targetView string) (*dto.NavigateResponse, error) {
	if !shared.ValidView(targetView) {
		return nil, shared.NewBadRequestError(errors.New("unknown view: "+targetView), "Unknown view")
	}

	switch targetView {
	case shared.ViewLanding:
		svc.stateSvc.ClearActiveLesson(sessionID)

	case shared.ViewNewGoal:
		// Always reachable.

	case shared.ViewPlan:
		if svc.stateSvc.GetPlan(sessionID) == nil {
			return nil, shared.NewNotFoundError(errors.New("no plan"), "No plan found for this session")
		}
		svc.stateSvc.ClearActiveLesson(sessionID)

	case shared.ViewLesson, shared.ViewDrill:
		lessonID := svc.stateSvc.GetActiveLessonID(sessionID)
		if lessonID == "" {
			return nil, shared.NewBadRequestError(errors.New("no active lesson"), "Select a lesson first")
		}
		if !svc.lessonResolves(svc.stateSvc.GetPlan(sessionID), lessonID) {
			return nil, shared.NewBadRequestError(errors.New("active lesson does not resolve"), "Select a lesson first")
		}
	}

	svc.stateSvc.SetView(sessionID, targetView)

	return &dto.NavigateResponse{
		View:           targetView,
		ActiveLessonID: svc.stateSvc.GetActiveLessonID(sessionID),
	}, nil
}

// Repair runs the resume-time guard over the persisted view state:
//
//   - a lesson or drill view whose active lesson no longer resolves falls
//     back to the plan, or to landing when there is no plan
//   - a landing view skips ahead for returning users: to the goal form
//     when they have a name but no plan, to the plan when they have one
//
// The repaired view is persisted and returned.
func (svc *NavigationService) Repair(sessionID string) string {
	view := svc.stateSvc.GetView(sessionID)
	plan := svc.stateSvc.GetPlan(sessionID)

	if view == shared.ViewLesson || view == shared.ViewDrill {
		lessonID := svc.stateSvc.GetActiveLessonID(sessionID)
		dangling := lessonID == "" || !svc.lessonResolves(plan, lessonID)
		if dangling {
			if plan != nil {
				view = shared.ViewPlan
			} else {
				view = shared.ViewLanding
			}
			log.WithFields(log.Fields{
				"session_id": sessionID,
				"view":       view,
			}).Info("Repaired dangling lesson view")
			svc.stateSvc.SetView(sessionID, view)
		}
	}

	if view == shared.ViewLanding {
		user := svc.stateSvc.GetUser(sessionID)
		if user.Name != "" && user.Name != shared.DefaultUserName && plan == nil {
			view = shared.ViewNewGoal
			svc.stateSvc.SetView(sessionID, view)
		} else if plan != nil {
			view = shared.ViewPlan
			svc.stateSvc.SetView(sessionID, view)
		}
	}

	return view
}
