package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillbites-ai/bites_api/model"
	"github.com/skillbites-ai/bites_api/shared"
)

func newTestSqlite(t *testing.T) *SqliteService {
	t.Helper()

	sql := &SqliteService{database: ":memory:"}
	require.NoError(t, sql.Start())
	return sql
}

func newTestState(t *testing.T) *StateService {
	t.Helper()

	return &StateService{
		storageSvc: &StorageService{sqlSvc: newTestSqlite(t)},
	}
}

func newTestLibrary() *LibraryService {
	return &LibraryService{drills: builtinDrills()}
}

// testPlan builds a plan with n sequential lessons, none completed.
func testPlan(n int) *model.Plan {
	plan := &model.Plan{
		ID:          "plan-test",
		GoalID:      "goal-test",
		Title:       "Public Speaking",
		ProgramType: shared.ProgramSevenDays,
	}
	for i := 0; i < n; i++ {
		plan.Lessons = append(plan.Lessons, model.Lesson{
			ID:       fmt.Sprintf("lesson-%d", i+1),
			Day:      i + 1,
			Title:    fmt.Sprintf("Day %d: Basics", i+1),
			Duration: 15,
			Type:     shared.LessonTypeTextAndExercise,
			Content:  []string{"Intro paragraph"},
			SelfCheck: model.SelfCheck{
				Question:      "Did you complete this lesson?",
				Options:       []string{"Yes", "No"},
				CorrectAnswer: "Yes",
			},
		})
	}
	return plan
}
