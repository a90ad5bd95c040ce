package sanitize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbites-ai/bites_api/shared"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestUserDefaultsOnEmptyPayload(t *testing.T) {
	u := User(nil)

	assert.Equal(t, shared.DefaultUserID, u.ID)
	assert.Equal(t, shared.DefaultUserEmail, u.Email)
	assert.Equal(t, shared.DefaultUserName, u.Name)
	assert.Equal(t, shared.TierPro, u.SubscriptionTier)
	assert.Equal(t, 0, u.Streak)
	assert.Empty(t, u.LastLessonDate)
	assert.NotNil(t, u.History)
	assert.Empty(t, u.History)
}

func TestUserRepairsMistypedFields(t *testing.T) {
	u := User(decode(t, `{
		"id": "u42",
		"name": "Ava",
		"subscriptionTier": "platinum",
		"streak": "not-a-number",
		"history": {"oops": true}
	}`))

	assert.Equal(t, "u42", u.ID)
	assert.Equal(t, "Ava", u.Name)
	assert.Equal(t, shared.TierPro, u.SubscriptionTier)
	assert.Equal(t, 0, u.Streak)
	assert.Empty(t, u.History)
}

func TestUserKeepsValidFields(t *testing.T) {
	u := User(decode(t, `{
		"id": "u1",
		"email": "ava@example.com",
		"name": "Ava",
		"subscriptionTier": "free",
		"streak": 4,
		"lastLessonDate": "2026-02-10",
		"history": ["2026-02-09", "2026-02-10"]
	}`))

	assert.Equal(t, shared.TierFree, u.SubscriptionTier)
	assert.Equal(t, 4, u.Streak)
	assert.Equal(t, "2026-02-10", u.LastLessonDate)
	assert.Equal(t, []string{"2026-02-09", "2026-02-10"}, u.History)
}

func TestUserIdempotent(t *testing.T) {
	first := User(decode(t, `{"name": "Ava", "streak": 3, "history": ["2026-02-10"]}`))

	raw, err := json.Marshal(first)
	require.NoError(t, err)
	second := User(decode(t, string(raw)))

	assert.Equal(t, first, second)
}

func TestGoalRequiresTitle(t *testing.T) {
	assert.Nil(t, Goal(nil))
	assert.Nil(t, Goal(decode(t, `{"difficulty": "Advanced"}`)))
	assert.Nil(t, Goal(decode(t, `{"title": ""}`)))
}

func TestGoalDefaults(t *testing.T) {
	g := Goal(decode(t, `{"title": "Public speaking", "difficulty": "Impossible", "level": 0}`))
	require.NotNil(t, g)

	assert.Equal(t, "Public speaking", g.Title)
	assert.Equal(t, shared.DifficultyBeginner, g.Difficulty)
	assert.Equal(t, 1, g.Level)
	assert.Equal(t, 0, g.Progress)
	assert.Equal(t, 0, g.XP)
	assert.NotEmpty(t, g.ID)
	assert.Empty(t, g.Badges)
	assert.Empty(t, g.CompletionDates)
}

func TestPlanRequiresLessonsArray(t *testing.T) {
	assert.Nil(t, Plan(nil))
	assert.Nil(t, Plan(decode(t, `{"title": "My Plan"}`)))
	assert.Nil(t, Plan(decode(t, `{"lessons": "seven of them"}`)))
}

func TestPlanWithEmptyLessonsSurvives(t *testing.T) {
	p := Plan(decode(t, `{"lessons": []}`))
	require.NotNil(t, p)

	assert.Equal(t, "unknown", p.GoalID)
	assert.Equal(t, "My Plan", p.Title)
	assert.Equal(t, shared.ProgramSevenDays, p.ProgramType)
	assert.Empty(t, p.Lessons)
}

func TestPlanRepairsEachLesson(t *testing.T) {
	p := Plan(decode(t, `{
		"goalId": "goal-1",
		"title": "Speak with confidence",
		"programType": "1-day",
		"lessons": [
			{},
			{"title": "Openers", "day": 7, "duration": 25, "type": "quick_drill"},
			{"type": "interpretive_dance", "selfCheck": {"options": ["A"]}}
		]
	}`))
	require.NotNil(t, p)
	require.Len(t, p.Lessons, 3)

	first := p.Lessons[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, "Day 1", first.Title)
	assert.Equal(t, 10, first.Duration)
	assert.Equal(t, shared.LessonTypeTextAndExercise, first.Type)
	assert.False(t, first.IsCompleted)
	assert.Equal(t, 0, first.CurrentStep)
	assert.NotNil(t, first.Content)
	assert.NotNil(t, first.GamifiedQuiz)

	second := p.Lessons[1]
	assert.Equal(t, 7, second.Day)
	assert.Equal(t, "Openers", second.Title)
	assert.Equal(t, shared.LessonTypeQuickDrill, second.Type)

	// Unknown type falls back; a self-check with no question is replaced
	// by the canonical completion question.
	third := p.Lessons[2]
	assert.Equal(t, shared.LessonTypeTextAndExercise, third.Type)
	assert.Equal(t, "Did you complete this lesson?", third.SelfCheck.Question)
	assert.Equal(t, []string{"Yes", "No"}, third.SelfCheck.Options)
	assert.Equal(t, "Yes", third.SelfCheck.CorrectAnswer)
}

func TestSelfCheckPartialRepair(t *testing.T) {
	l := Lesson(decode(t, `{"selfCheck": {"question": "Ready?", "options": []}}`), 0)

	assert.Equal(t, "Ready?", l.SelfCheck.Question)
	assert.Equal(t, []string{"Completed"}, l.SelfCheck.Options)
	assert.Equal(t, "Completed", l.SelfCheck.CorrectAnswer)
}

func TestExerciseRepair(t *testing.T) {
	withExercise := Lesson(decode(t, `{"exercise": {"description": "Do the thing"}}`), 0)
	require.NotNil(t, withExercise.Exercise)
	assert.Equal(t, "Exercise", withExercise.Exercise.Title)
	assert.Equal(t, "Do the thing", withExercise.Exercise.Description)

	withoutExercise := Lesson(decode(t, `{}`), 0)
	assert.Nil(t, withoutExercise.Exercise)
}

func TestQuizKeepsCorrectAnswerUnchecked(t *testing.T) {
	// correctAnswer is not forced to be one of options; rendering tolerates it.
	l := Lesson(decode(t, `{"gamifiedQuiz": [
		{"question": "Q1", "options": ["A", "B"], "correctAnswer": "C"}
	]}`), 0)

	require.Len(t, l.GamifiedQuiz, 1)
	assert.Equal(t, "C", l.GamifiedQuiz[0].CorrectAnswer)
}

func TestPlanIdempotent(t *testing.T) {
	first := Plan(decode(t, `{"lessons": [{}, {"title": "Openers"}]}`))
	require.NotNil(t, first)

	raw, err := json.Marshal(first)
	require.NoError(t, err)
	second := Plan(decode(t, string(raw)))
	require.NotNil(t, second)

	assert.Equal(t, first, second)
}
