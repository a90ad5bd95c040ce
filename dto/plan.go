package dto

import "github.com/skillbites-ai/bites_api/model"

type GeneratePlanRequest struct {
	Goal        string `json:"goal" validate:"required,min=1,max=300"`
	Difficulty  string `json:"difficulty" validate:"required,oneof=Beginner Intermediate Advanced"`
	ProgramType string `json:"program_type" validate:"omitempty,oneof=1-day 7-days"`
	TimeBudget  string `json:"time_budget" validate:"omitempty,max=50"`
}

func (r GeneratePlanRequest) Validate() error {
	return GetValidator().Struct(r)
}

// PlanResponse pairs the plan with the derived lock state of each lesson,
// index-aligned with plan.lessons.
type PlanResponse struct {
	Plan   *model.Plan `json:"plan"`
	Locked []bool      `json:"locked"`
}

func NewPlanResponse(plan *model.Plan) *PlanResponse {
	resp := &PlanResponse{Plan: plan}
	if plan == nil {
		return resp
	}
	resp.Locked = make([]bool, len(plan.Lessons))
	for i := range plan.Lessons {
		resp.Locked[i] = plan.LessonLocked(i)
	}
	return resp
}

type CertificateResponse struct {
	Recipient   string   `json:"recipient"`
	PlanTitle   string   `json:"plan_title"`
	CompletedOn string   `json:"completed_on"`
	ShareText   string   `json:"share_text"`
	ShareURL    string   `json:"share_url"`
	Platforms   []string `json:"platforms"`
}

type SearchResult struct {
	LessonID    string `json:"lesson_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"` // "plan" or "drill"
	View        string `json:"view"`   // lesson or drill
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}
