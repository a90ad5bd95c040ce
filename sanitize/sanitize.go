// Package sanitize normalizes untrusted state payloads into well-formed
// entities. Payloads arrive from two places that cannot be trusted to hold
// the current schema: persisted state slots written by older builds, and
// JSON produced by the plan generator model. Every function here is total
// over its input; missing, mistyped or hostile fields degrade to defaults
// instead of failing.
package sanitize

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/skillbites-ai/bites_api/model"
	"github.com/skillbites-ai/bites_api/shared"
)

// Str pulls a string field, falling back when absent, empty or mistyped.
// Numbers are formatted rather than dropped so numeric ids survive.
func Str(m map[string]interface{}, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	switch s := v.(type) {
	case string:
		if s == "" {
			return fallback
		}
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return fallback
}

// Int pulls a numeric field. Zero counts as absent, mirroring the
// falsy-or-default semantics the stored payloads were written under.
func Int(m map[string]interface{}, key string, fallback int) int {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	n := toInt(v)
	if n == 0 {
		return fallback
	}
	return n
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return int(f)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return int(f)
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

// Truthy reports whether a field holds a truthy value: true, a non-zero
// number, or a non-empty string.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		f, _ := t.Float64()
		return f != 0
	}
	return false
}

// StrSlice pulls a string array field; anything that is not an array
// collapses to an empty slice, and non-string elements are dropped.
func StrSlice(m map[string]interface{}, key string) []string {
	out := []string{}
	arr, ok := m[key].([]interface{})
	if !ok {
		return out
	}
	for _, el := range arr {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func subMap(m map[string]interface{}, key string) map[string]interface{} {
	sub, _ := m[key].(map[string]interface{})
	return sub
}

// User never fails: whatever the payload looks like, a usable user
// comes back.
func User(data map[string]interface{}) model.User {
	if data == nil {
		data = map[string]interface{}{}
	}

	tier := Str(data, "subscriptionTier", shared.TierPro)
	switch tier {
	case shared.TierFree, shared.TierStarter, shared.TierPro:
	default:
		tier = shared.TierPro
	}

	return model.User{
		ID:               Str(data, "id", shared.DefaultUserID),
		Email:            Str(data, "email", shared.DefaultUserEmail),
		Name:             Str(data, "name", shared.DefaultUserName),
		SubscriptionTier: tier,
		LastActive:       Str(data, "lastActive", ""),
		Streak:           Int(data, "streak", 0),
		LastLessonDate:   Str(data, "lastLessonDate", ""),
		History:          StrSlice(data, "history"),
	}
}

// Goal returns nil when the payload has no title; a goal without one
// is not recoverable.
func Goal(data map[string]interface{}) *model.Goal {
	if data == nil {
		return nil
	}
	title := Str(data, "title", "")
	if title == "" {
		return nil
	}

	difficulty := Str(data, "difficulty", shared.DifficultyBeginner)
	if !shared.ValidDifficulty(difficulty) {
		difficulty = shared.DifficultyBeginner
	}

	return &model.Goal{
		ID:              Str(data, "id", newID("goal")),
		Title:           title,
		Description:     Str(data, "description", ""),
		Progress:        Int(data, "progress", 0),
		Streak:          Int(data, "streak", 0),
		Badges:          badges(data),
		XP:              Int(data, "xp", 0),
		Level:           Int(data, "level", 1),
		Difficulty:      difficulty,
		CompletionDates: StrSlice(data, "completionDates"),
	}
}

func badges(data map[string]interface{}) []model.Badge {
	out := []model.Badge{}
	arr, ok := data["badges"].([]interface{})
	if !ok {
		return out
	}
	for _, el := range arr {
		b, ok := el.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, model.Badge{
			ID:          Str(b, "id", ""),
			Name:        Str(b, "name", ""),
			Description: Str(b, "description", ""),
			Icon:        Str(b, "icon", ""),
		})
	}
	return out
}

// Plan returns nil when the payload carries no lessons array. Every lesson
// that is present is repaired individually; a plan never comes back with a
// partially-formed lesson.
func Plan(data map[string]interface{}) *model.Plan {
	if data == nil {
		return nil
	}
	rawLessons, ok := data["lessons"].([]interface{})
	if !ok {
		return nil
	}

	lessons := make([]model.Lesson, 0, len(rawLessons))
	for i, raw := range rawLessons {
		l, _ := raw.(map[string]interface{})
		lessons = append(lessons, Lesson(l, i))
	}

	return &model.Plan{
		ID:          Str(data, "id", newID("plan")),
		GoalID:      Str(data, "goalId", "unknown"),
		Title:       Str(data, "title", "My Plan"),
		ProgramType: Str(data, "programType", shared.ProgramSevenDays),
		Lessons:     lessons,
	}
}

// Lesson repairs a single lesson payload. The index positions defaults:
// day falls back to index+1 and the placeholder title names that day.
func Lesson(l map[string]interface{}, index int) model.Lesson {
	if l == nil {
		l = map[string]interface{}{}
	}

	day := Int(l, "day", index+1)

	lessonType := Str(l, "type", shared.LessonTypeTextAndExercise)
	if !shared.ValidLessonType(lessonType) {
		lessonType = shared.LessonTypeTextAndExercise
	}

	return model.Lesson{
		ID:                Str(l, "id", newID(fmt.Sprintf("lesson-%d", index))),
		Day:               day,
		Title:             Str(l, "title", fmt.Sprintf("Day %d", index+1)),
		Description:       Str(l, "description", ""),
		Duration:          Int(l, "duration", 10),
		Type:              lessonType,
		Content:           StrSlice(l, "content"),
		Exercise:          exercise(l),
		VoicePrompt:       Str(l, "voicePrompt", ""),
		SelfCheck:         selfCheck(l),
		RealWorldExamples: StrSlice(l, "realWorldExamples"),
		PracticalTask:     Str(l, "practicalTask", ""),
		GamifiedQuiz:      quiz(l),
		IsCompleted:       Truthy(l["isCompleted"]),
		Notes:             Str(l, "notes", ""),
		CurrentStep:       Int(l, "currentStep", 0),
		DifficultyRating:  Str(l, "difficultyRating", ""),
	}
}

func exercise(l map[string]interface{}) *model.Exercise {
	ex := subMap(l, "exercise")
	if ex == nil {
		return nil
	}
	return &model.Exercise{
		Title:       Str(ex, "title", "Exercise"),
		Description: Str(ex, "description", ""),
	}
}

// selfCheck guarantees every lesson an answerable check. A check with no
// question is replaced wholesale by the canonical completion question.
func selfCheck(l map[string]interface{}) model.SelfCheck {
	sc := subMap(l, "selfCheck")
	if sc == nil || Str(sc, "question", "") == "" {
		return model.SelfCheck{
			Question:      "Did you complete this lesson?",
			Options:       []string{"Yes", "No"},
			CorrectAnswer: "Yes",
		}
	}

	options := StrSlice(sc, "options")
	if len(options) == 0 {
		options = []string{"Completed"}
	}

	return model.SelfCheck{
		Question:      Str(sc, "question", ""),
		Options:       options,
		CorrectAnswer: Str(sc, "correctAnswer", "Completed"),
	}
}

func quiz(l map[string]interface{}) []model.QuizQuestion {
	out := []model.QuizQuestion{}
	arr, ok := l["gamifiedQuiz"].([]interface{})
	if !ok {
		return out
	}
	for _, el := range arr {
		q, ok := el.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, model.QuizQuestion{
			Question:      Str(q, "question", ""),
			Options:       StrSlice(q, "options"),
			CorrectAnswer: Str(q, "correctAnswer", ""),
		})
	}
	return out
}

func newID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}
