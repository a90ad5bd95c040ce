package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbites-ai/bites_api/shared"
)

func TestDrillCatalog(t *testing.T) {
	svc := newTestLibrary()

	drills := svc.Drills()
	require.Len(t, drills, 4)
	for _, d := range drills {
		assert.Equal(t, shared.LessonTypeQuickDrill, d.Type)
		assert.NotEmpty(t, d.Title)
		assert.NotNil(t, d.Exercise)
	}
}

func TestFindDrill(t *testing.T) {
	svc := newTestLibrary()

	drill := svc.FindDrill("drill3")
	require.NotNil(t, drill)
	assert.Equal(t, "Tongue Twisters", drill.Title)
	assert.NotEmpty(t, drill.VoicePrompt)

	assert.Nil(t, svc.FindDrill("drill-unknown"))
}

func TestFindDrillReturnsCopy(t *testing.T) {
	svc := newTestLibrary()

	drill := svc.FindDrill("drill1")
	require.NotNil(t, drill)
	drill.Title = "Mutated"

	assert.Equal(t, "One-Minute Pitch", svc.FindDrill("drill1").Title)
}

func TestSearchMatchesPlanAndDrills(t *testing.T) {
	svc := newTestLibrary()
	plan := testPlan(2)
	plan.Lessons[0].Title = "Breathing for Speakers"

	resp := svc.Search(plan, "breathing")
	require.Len(t, resp.Results, 2)

	assert.Equal(t, "plan", resp.Results[0].Source)
	assert.Equal(t, shared.ViewLesson, resp.Results[0].View)
	assert.Equal(t, "drill", resp.Results[1].Source)
	assert.Equal(t, shared.ViewDrill, resp.Results[1].View)
}

func TestSearchCaseInsensitive(t *testing.T) {
	svc := newTestLibrary()

	resp := svc.Search(nil, "POWER POSE")
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "drill2", resp.Results[0].LessonID)
}

func TestSearchMatchesDescriptions(t *testing.T) {
	svc := newTestLibrary()

	resp := svc.Search(nil, "diction")
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "drill3", resp.Results[0].LessonID)
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := newTestLibrary()

	resp := svc.Search(testPlan(2), "   ")
	assert.Empty(t, resp.Results)

	resp = svc.Search(nil, "")
	assert.Empty(t, resp.Results)
}

func TestSearchWithoutPlan(t *testing.T) {
	svc := newTestLibrary()

	resp := svc.Search(nil, "basics")
	assert.Empty(t, resp.Results)
}
