package dto

import "github.com/skillbites-ai/bites_api/model"

type UpdateLessonRequest struct {
	Notes            *string `json:"notes" validate:"omitempty,max=10000"`
	CurrentStep      *int    `json:"current_step" validate:"omitempty,min=0"`
	DifficultyRating *string `json:"difficulty_rating" validate:"omitempty,oneof=easy good hard"`
}

func (r UpdateLessonRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SelectLessonResponse struct {
	View   string       `json:"view"`
	Lesson model.Lesson `json:"lesson"`
}

// CompleteLessonResponse returns both entities the completion touched.
type CompleteLessonResponse struct {
	Plan *model.Plan `json:"plan"`
	User model.User  `json:"user"`
}
