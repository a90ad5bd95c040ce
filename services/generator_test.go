package services

import (
	goContext "context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbites-ai/bites_api/shared"
)

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateContent(_ goContext.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func newTestGenerator(t *testing.T, fake ContentGenerator) *GeneratorService {
	t.Helper()

	return &GeneratorService{
		stateSvc:  newTestState(t),
		generator: fake,
		inFlight:  make(map[string]struct{}),
	}
}

const generatedPlanJSON = `{
	"title": "Public Speaking",
	"difficulty": "Beginner",
	"programType": "7-days",
	"lessons": [
		{
			"day": 1,
			"title": "Finding Your Voice",
			"description": "Warm up",
			"duration": 20,
			"type": "text_and_exercise",
			"content": ["Paragraph one", "Paragraph two", "Paragraph three"],
			"realWorldExamples": ["TED talks"],
			"practicalTask": "Record a 2 minute talk",
			"gamifiedQuiz": [
				{"question": "Q?", "options": ["A", "B"], "correctAnswer": "A"}
			]
		}
	]
}`

func TestDerivePlanParams(t *testing.T) {
	tests := []struct {
		name        string
		programType string
		timeBudget  string
		want        planParams
	}{
		{
			name:        "seven day twenty minutes",
			programType: shared.ProgramSevenDays,
			timeBudget:  "20 mins/day",
			want:        planParams{NumLessons: 7, MinutesPerLesson: 20, ParagraphCount: 7, QuizCount: 3, ExampleCount: 2},
		},
		{
			name:        "one day four hours",
			programType: shared.ProgramOneDay,
			timeBudget:  "4 hours",
			want:        planParams{NumLessons: 5, MinutesPerLesson: 48, ParagraphCount: 10, QuizCount: 5, ExampleCount: 3},
		},
		{
			name:        "seven day default budget",
			programType: shared.ProgramSevenDays,
			timeBudget:  "a while",
			want:        planParams{NumLessons: 7, MinutesPerLesson: 15, ParagraphCount: 5, QuizCount: 3, ExampleCount: 2},
		},
		{
			name:        "one day plain minutes",
			programType: shared.ProgramOneDay,
			timeBudget:  "60 minutes",
			want:        planParams{NumLessons: 5, MinutesPerLesson: 12, ParagraphCount: 4, QuizCount: 3, ExampleCount: 2},
		},
		{
			name:        "one day no number",
			programType: shared.ProgramOneDay,
			timeBudget:  "whenever",
			want:        planParams{NumLessons: 5, MinutesPerLesson: 6, ParagraphCount: 3, QuizCount: 3, ExampleCount: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, derivePlanParams(tt.programType, tt.timeBudget))
		})
	}
}

func TestLeadingInt(t *testing.T) {
	n, ok := leadingInt("20 mins/day")
	assert.True(t, ok)
	assert.Equal(t, 20, n)

	n, ok = leadingInt(" 4 hours")
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	_, ok = leadingInt("about an hour")
	assert.False(t, ok)

	_, ok = leadingInt("")
	assert.False(t, ok)

	// A digit run too long for an int is unparseable, not negative.
	_, ok = leadingInt("99999999999999999999 mins/day")
	assert.False(t, ok)
}

func TestDerivePlanParamsOverlongBudget(t *testing.T) {
	p := derivePlanParams(shared.ProgramSevenDays, "99999999999999999999 mins/day")
	assert.Equal(t, 15, p.MinutesPerLesson)
	assert.Equal(t, 7, p.NumLessons)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, stripFences("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, stripFences(`{"a": 1}`))
}

func TestBuildPromptDepth(t *testing.T) {
	deep := buildPrompt("Calculus", shared.DifficultyAdvanced, shared.ProgramOneDay, "4 hours", derivePlanParams(shared.ProgramOneDay, "4 hours"))
	assert.Contains(t, deep, "EXTENSIVE DEPTH")
	assert.Contains(t, deep, "exactly 5 lessons/modules")

	shallow := buildPrompt("Calculus", shared.DifficultyBeginner, shared.ProgramSevenDays, "15 mins/day", derivePlanParams(shared.ProgramSevenDays, "15 mins/day"))
	assert.Contains(t, shallow, "Concise and actionable.")
	assert.Contains(t, shallow, "exactly 7 lessons/modules")
}

func TestGeneratePlanInstalls(t *testing.T) {
	fake := &fakeGenerator{text: generatedPlanJSON}
	svc := newTestGenerator(t, fake)

	plan, err := svc.GeneratePlan(goContext.Background(), "s1", "Public Speaking", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.Equal(t, "Public Speaking", plan.Title)
	assert.True(t, strings.HasPrefix(plan.GoalID, "goal-"))
	require.Len(t, plan.Lessons, 1)
	assert.Equal(t, "Finding Your Voice", plan.Lessons[0].Title)

	stored := svc.stateSvc.GetPlan("s1")
	require.NotNil(t, stored)
	assert.Equal(t, plan.ID, stored.ID)
	assert.Equal(t, shared.ViewPlan, svc.stateSvc.GetView("s1"))
}

func TestGeneratePlanStripsFences(t *testing.T) {
	fake := &fakeGenerator{text: "```json\n" + generatedPlanJSON + "\n```"}
	svc := newTestGenerator(t, fake)

	plan, err := svc.GeneratePlan(goContext.Background(), "s1", "Public Speaking", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	require.NoError(t, err)
	require.NotNil(t, plan)
}

func TestGeneratePlanParseFailure(t *testing.T) {
	fake := &fakeGenerator{text: "I'm sorry, I can't help with that."}
	svc := newTestGenerator(t, fake)

	plan, err := svc.GeneratePlan(goContext.Background(), "s1", "Public Speaking", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	assert.Nil(t, plan)
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.StatusCode)
}

func TestGeneratePlanModelError(t *testing.T) {
	fake := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := newTestGenerator(t, fake)

	_, err := svc.GeneratePlan(goContext.Background(), "s1", "Public Speaking", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.StatusCode)
}

func TestGeneratePlanDropsUnusablePayload(t *testing.T) {
	fake := &fakeGenerator{text: `{"title": "No Lessons Here"}`}
	svc := newTestGenerator(t, fake)

	svc.stateSvc.SavePlan("s1", testPlan(2))

	plan, err := svc.GeneratePlan(goContext.Background(), "s1", "Public Speaking", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	require.NoError(t, err)
	assert.Nil(t, plan)

	// The previous plan stays installed.
	stored := svc.stateSvc.GetPlan("s1")
	require.NotNil(t, stored)
	assert.Len(t, stored.Lessons, 2)
}

func TestGeneratePlanConflict(t *testing.T) {
	fake := &fakeGenerator{text: generatedPlanJSON}
	svc := newTestGenerator(t, fake)
	svc.inFlight["s1"] = struct{}{}

	_, err := svc.GeneratePlan(goContext.Background(), "s1", "Public Speaking", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)

	// Other sessions are unaffected.
	plan, err := svc.GeneratePlan(goContext.Background(), "s2", "Public Speaking", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	require.NoError(t, err)
	assert.NotNil(t, plan)
}

func TestGeneratePlanWithoutGenerator(t *testing.T) {
	svc := newTestGenerator(t, nil)
	svc.generator = nil

	_, err := svc.GeneratePlan(goContext.Background(), "s1", "Public Speaking", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.StatusCode)
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (f *fakeCache) Get(_ goContext.Context, key string) (string, error) {
	return f.store[key], nil
}

func (f *fakeCache) Set(_ goContext.Context, key string, value interface{}, _ time.Duration) error {
	f.store[key] = value.(string)
	return nil
}

func TestGeneratePlanServesRepeatPromptsFromCache(t *testing.T) {
	fake := &fakeGenerator{text: generatedPlanJSON}
	svc := newTestGenerator(t, fake)
	svc.cache = newFakeCache()

	_, err := svc.GeneratePlan(goContext.Background(), "s1", "Public Speaking", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	require.NoError(t, err)

	// Identical request from another session: no second model call.
	plan, err := svc.GeneratePlan(goContext.Background(), "s2", "Public Speaking", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Len(t, fake.prompts, 1)

	require.NotNil(t, svc.stateSvc.GetPlan("s2"))

	// A different goal misses the cache.
	_, err = svc.GeneratePlan(goContext.Background(), "s3", "Knife Sharpening", shared.DifficultyBeginner, shared.ProgramSevenDays, "20 mins/day")
	require.NoError(t, err)
	assert.Len(t, fake.prompts, 2)
}

func TestNextLevelRegeneratesAdvanced(t *testing.T) {
	fake := &fakeGenerator{text: generatedPlanJSON}
	svc := newTestGenerator(t, fake)

	svc.stateSvc.SavePlan("s1", testPlan(2))

	plan, err := svc.NextLevel(goContext.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, plan)

	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], shared.DifficultyAdvanced)
	assert.Contains(t, fake.prompts[0], "Public Speaking")
	assert.Contains(t, fake.prompts[0], "20 mins/day")
}

func TestNextLevelWithoutPlan(t *testing.T) {
	svc := newTestGenerator(t, &fakeGenerator{text: generatedPlanJSON})

	_, err := svc.NextLevel(goContext.Background(), "s1")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}
