package dto

import "github.com/skillbites-ai/bites_api/model"

// StateSnapshot is the full per-session app state: every persisted slot,
// already sanitized.
type StateSnapshot struct {
	User           model.User  `json:"user"`
	Plan           *model.Plan `json:"plan"`
	View           string      `json:"view"`
	ActiveLessonID string      `json:"active_lesson_id,omitempty"`
	LegalAccepted  bool        `json:"legal_accepted"`
	Theme          string      `json:"theme"`
}

type NavigateRequest struct {
	View string `json:"view" validate:"required,oneof=landing new-goal plan lesson drill"`
}

func (r NavigateRequest) Validate() error {
	return GetValidator().Struct(r)
}

type NavigateResponse struct {
	View           string `json:"view"`
	ActiveLessonID string `json:"active_lesson_id,omitempty"`
}

type SetNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func (r SetNameRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SetThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

func (r SetThemeRequest) Validate() error {
	return GetValidator().Struct(r)
}
