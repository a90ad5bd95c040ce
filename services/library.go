package services

import (
	"strings"

	"github.com/alphabatem/common/context"

	"github.com/skillbites-ai/bites_api/dto"
	"github.com/skillbites-ai/bites_api/model"
	"github.com/skillbites-ai/bites_api/shared"
)

// LibraryService serves the built-in quick-drill catalog and searches it
// together with the session's plan.
type LibraryService struct {
	context.DefaultService

	drills []model.Lesson
}

const LIBRARY_SVC = "library_svc"

func (svc LibraryService) Id() string {
	return LIBRARY_SVC
}

func (svc *LibraryService) Configure(ctx *context.Context) error {
	svc.drills = builtinDrills()
	return svc.DefaultService.Configure(ctx)
}

func (svc *LibraryService) Start() error {
	return nil
}

func (svc *LibraryService) Drills() []model.Lesson {
	return svc.drills
}

func (svc *LibraryService) FindDrill(id string) *model.Lesson {
	for i := range svc.drills {
		if svc.drills[i].ID == id {
			drill := svc.drills[i]
			return &drill
		}
	}
	return nil
}

// Search matches the query against lesson and drill titles and
// descriptions, case-insensitively. An empty query matches nothing.
func (svc *LibraryService) Search(plan *model.Plan, query string) *dto.SearchResponse {
	resp := &dto.SearchResponse{Query: query, Results: []dto.SearchResult{}}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return resp
	}

	if plan != nil {
		for i := range plan.Lessons {
			l := &plan.Lessons[i]
			if matches(q, l.Title, l.Description) {
				view := shared.ViewLesson
				if l.Type == shared.LessonTypeQuickDrill {
					view = shared.ViewDrill
				}
				resp.Results = append(resp.Results, dto.SearchResult{
					LessonID:    l.ID,
					Title:       l.Title,
					Description: l.Description,
					Source:      "plan",
					View:        view,
				})
			}
		}
	}

	for i := range svc.drills {
		d := &svc.drills[i]
		if matches(q, d.Title, d.Description) {
			resp.Results = append(resp.Results, dto.SearchResult{
				LessonID:    d.ID,
				Title:       d.Title,
				Description: d.Description,
				Source:      "drill",
				View:        shared.ViewDrill,
			})
		}
	}

	return resp
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func builtinDrills() []model.Lesson {
	return []model.Lesson{
		{
			ID:          "drill1",
			Day:         0,
			Title:       "One-Minute Pitch",
			Duration:    2,
			Description: "Practice delivering a concise and powerful pitch about yourself or a project.",
			Type:        shared.LessonTypeQuickDrill,
			Content:     []string{},
			Exercise: &model.Exercise{
				Title:       "Practice Your Pitch",
				Description: "Take one minute to describe what you do or a project you are passionate about. Record yourself and listen back for clarity and confidence.",
			},
			SelfCheck: model.SelfCheck{
				Question:      "Which of these is a key element of a one-minute pitch?",
				Options:       []string{"Talking as fast as possible", "Focusing on a single key message", "Listing every detail of the project"},
				CorrectAnswer: "Focusing on a single key message",
			},
			RealWorldExamples: []string{},
			GamifiedQuiz:      []model.QuizQuestion{},
		},
		{
			ID:          "drill2",
			Day:         0,
			Title:       "Power Pose",
			Duration:    1,
			Description: "A quick exercise to boost your confidence before a meeting or presentation.",
			Type:        shared.LessonTypeQuickDrill,
			Content:     []string{},
			Exercise: &model.Exercise{
				Title:       "Strike a Pose",
				Description: `Stand in a "power pose" (e.g., hands on hips, chest out) for 60 seconds. This has been shown to boost feelings of confidence.`,
			},
			SelfCheck: model.SelfCheck{
				Question:      "How long should you hold a power pose to feel the benefits?",
				Options:       []string{"10 seconds", "2 minutes", "30 minutes"},
				CorrectAnswer: "2 minutes",
			},
			RealWorldExamples: []string{},
			GamifiedQuiz:      []model.QuizQuestion{},
		},
		{
			ID:          "drill3",
			Day:         0,
			Title:       "Tongue Twisters",
			Duration:    2,
			Description: "A fun drill to warm up your voice and improve diction for clearer speech.",
			VoicePrompt: "Red lorry, yellow lorry. She sells seashells by the seashore.",
			Type:        shared.LessonTypeQuickDrill,
			Content:     []string{},
			Exercise: &model.Exercise{
				Title:       "Improve Diction",
				Description: "Repeat the following tongue twisters three times, focusing on enunciating each word clearly.",
			},
			SelfCheck: model.SelfCheck{
				Question:      "What is the main goal of this tongue twister drill?",
				Options:       []string{"To memorize the phrase", "To speak as loud as possible", "To improve diction and clarity"},
				CorrectAnswer: "To improve diction and clarity",
			},
			RealWorldExamples: []string{},
			GamifiedQuiz:      []model.QuizQuestion{},
		},
		{
			ID:          "drill-breathing",
			Day:         0,
			Title:       "Box Breathing",
			Duration:    2,
			Description: "A simple, powerful technique to regain focus and calm your nervous system.",
			Type:        shared.LessonTypeQuickDrill,
			Content:     []string{},
			Exercise: &model.Exercise{
				Title:       "4-4-4-4 Pattern",
				Description: "Inhale for 4s, hold for 4s, exhale for 4s, hold for 4s. Repeat.",
			},
			SelfCheck: model.SelfCheck{
				Question:      "How do you feel after this exercise?",
				Options:       []string{"Calmer", "Same", "More Anxious"},
				CorrectAnswer: "Calmer",
			},
			RealWorldExamples: []string{},
			GamifiedQuiz:      []model.QuizQuestion{},
		},
	}
}
