package services

import (
	"github.com/alphabatem/common/context"

	"github.com/skillbites-ai/bites_api/dto"
	"github.com/skillbites-ai/bites_api/model"
	"github.com/skillbites-ai/bites_api/sanitize"
	"github.com/skillbites-ai/bites_api/shared"
)

// StateService is the entity store: typed access to each persisted slot of
// a session. Every read passes through the sanitizers, so callers always
// see well-formed entities no matter what the slot holds; every write goes
// straight through to storage.
type StateService struct {
	context.DefaultService

	storageSvc *StorageService
}

const STATE_SVC = "state_svc"

func (svc StateService) Id() string {
	return STATE_SVC
}

func (svc *StateService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *StateService) Start() error {
	svc.storageSvc = svc.Service(STORAGE_SVC).(*StorageService)
	return nil
}

func (svc *StateService) GetUser(sessionID string) model.User {
	return sanitize.User(svc.storageSvc.LoadMap(sessionID, shared.SlotUser))
}

func (svc *StateService) SaveUser(sessionID string, user model.User) {
	svc.storageSvc.Save(sessionID, shared.SlotUser, user)
}

// GetPlan returns nil when no usable plan is stored.
func (svc *StateService) GetPlan(sessionID string) *model.Plan {
	return sanitize.Plan(svc.storageSvc.LoadMap(sessionID, shared.SlotPlan))
}

func (svc *StateService) SavePlan(sessionID string, plan *model.Plan) {
	svc.storageSvc.Save(sessionID, shared.SlotPlan, plan)
}

func (svc *StateService) GetView(sessionID string) string {
	view := svc.storageSvc.LoadString(sessionID, shared.SlotViewState, shared.ViewLanding)
	if !shared.ValidView(view) {
		return shared.ViewLanding
	}
	return view
}

func (svc *StateService) SetView(sessionID, view string) {
	svc.storageSvc.Save(sessionID, shared.SlotViewState, view)
}

func (svc *StateService) GetActiveLessonID(sessionID string) string {
	return svc.storageSvc.LoadString(sessionID, shared.SlotActiveLesson, "")
}

func (svc *StateService) SetActiveLessonID(sessionID, lessonID string) {
	svc.storageSvc.Save(sessionID, shared.SlotActiveLesson, lessonID)
}

func (svc *StateService) ClearActiveLesson(sessionID string) {
	svc.storageSvc.Save(sessionID, shared.SlotActiveLesson, "")
}

func (svc *StateService) LegalAccepted(sessionID string) bool {
	return svc.storageSvc.LoadBool(sessionID, shared.SlotLegal, false)
}

func (svc *StateService) SetLegalAccepted(sessionID string, accepted bool) {
	svc.storageSvc.Save(sessionID, shared.SlotLegal, accepted)
}

func (svc *StateService) GetTheme(sessionID string) string {
	theme := svc.storageSvc.LoadString(sessionID, shared.SlotTheme, shared.ThemeLight)
	if theme != shared.ThemeLight && theme != shared.ThemeDark {
		return shared.ThemeLight
	}
	return theme
}

func (svc *StateService) SetTheme(sessionID, theme string) {
	svc.storageSvc.Save(sessionID, shared.SlotTheme, theme)
}

// Snapshot assembles the whole entity store in one pass.
func (svc *StateService) Snapshot(sessionID string) *dto.StateSnapshot {
	return &dto.StateSnapshot{
		User:           svc.GetUser(sessionID),
		Plan:           svc.GetPlan(sessionID),
		View:           svc.GetView(sessionID),
		ActiveLessonID: svc.GetActiveLessonID(sessionID),
		LegalAccepted:  svc.LegalAccepted(sessionID),
		Theme:          svc.GetTheme(sessionID),
	}
}

// Reset wipes the session's progress slots atomically. The theme slot is
// deliberately left alone: a reset changes what the user is learning, not
// how the app looks.
func (svc *StateService) Reset(sessionID string) error {
	return svc.storageSvc.Delete(sessionID, shared.ResetSlots...)
}
