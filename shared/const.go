package shared

const (
	SessionID = "session_id"

	// Persisted state slots, one row per session in the state_slots table.
	SlotUser         = "skillbites-user"
	SlotPlan         = "skillbites-plan"
	SlotLegal        = "skillbites-legal"
	SlotViewState    = "skillbites-view-state"
	SlotActiveLesson = "skillbites-active-lesson"
	SlotTheme        = "skillbites-theme"

	ViewLanding = "landing"
	ViewNewGoal = "new-goal"
	ViewPlan    = "plan"
	ViewLesson  = "lesson"
	ViewDrill   = "drill"

	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"

	ProgramOneDay    = "1-day"
	ProgramSevenDays = "7-days"

	LessonTypeTextAndExercise = "text_and_exercise"
	LessonTypeVoicePractice   = "voice_practice"
	LessonTypeQuickDrill      = "quick_drill"

	TierFree    = "free"
	TierStarter = "starter"
	TierPro     = "pro"

	ThemeLight = "light"
	ThemeDark  = "dark"

	// ISO calendar date, the granularity of streak and history bookkeeping.
	DateLayout = "2006-01-02"

	DefaultUserID    = "user1"
	DefaultUserEmail = "hello@skillbites.ai"
	DefaultUserName  = "Guest"
)

// ResetSlots lists the slots a reset clears. The theme slot is not among
// them: it survives a reset.
var ResetSlots = []string{
	SlotUser,
	SlotPlan,
	SlotViewState,
	SlotActiveLesson,
	SlotLegal,
}

func ValidView(view string) bool {
	switch view {
	case ViewLanding, ViewNewGoal, ViewPlan, ViewLesson, ViewDrill:
		return true
	}
	return false
}

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

func ValidLessonType(t string) bool {
	switch t {
	case LessonTypeTextAndExercise, LessonTypeVoicePractice, LessonTypeQuickDrill:
		return true
	}
	return false
}
