package model

// Entities stored in per-session state slots. They keep the camelCase wire
// format the stored payloads use, so a session's slots survive upgrades of
// the service unchanged.

type User struct {
	ID               string   `json:"id"`
	Email            string   `json:"email"`
	Name             string   `json:"name"`
	SubscriptionTier string   `json:"subscriptionTier"`
	LastActive       string   `json:"lastActive,omitempty"`
	Streak           int      `json:"streak"`
	LastLessonDate   string   `json:"lastLessonDate,omitempty"`
	History          []string `json:"history"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type Goal struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Progress        int      `json:"progress"`
	Streak          int      `json:"streak"`
	Badges          []Badge  `json:"badges"`
	XP              int      `json:"xp"`
	Level           int      `json:"level"`
	Difficulty      string   `json:"difficulty"`
	CompletionDates []string `json:"completionDates"`
}

type Exercise struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SelfCheck struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type Lesson struct {
	ID                string         `json:"id"`
	Day               int            `json:"day"`
	Title             string         `json:"title"`
	Description       string         `json:"description,omitempty"`
	Duration          int            `json:"duration"`
	Type              string         `json:"type"`
	Content           []string       `json:"content"`
	Exercise          *Exercise      `json:"exercise,omitempty"`
	VoicePrompt       string         `json:"voicePrompt,omitempty"`
	SelfCheck         SelfCheck      `json:"selfCheck"`
	RealWorldExamples []string       `json:"realWorldExamples"`
	PracticalTask     string         `json:"practicalTask"`
	GamifiedQuiz      []QuizQuestion `json:"gamifiedQuiz"`
	IsCompleted       bool           `json:"isCompleted"`
	Notes             string         `json:"notes"`
	CurrentStep       int            `json:"currentStep"`
	DifficultyRating  string         `json:"difficultyRating,omitempty"`
}

type Plan struct {
	ID          string   `json:"id"`
	GoalID      string   `json:"goalId"`
	Title       string   `json:"title"`
	ProgramType string   `json:"programType"`
	Lessons     []Lesson `json:"lessons"`
}

// Lesson lookup by id. Returns the index too so callers can derive the
// sequential-unlock state without a second scan.
func (p *Plan) FindLesson(lessonID string) (*Lesson, int) {
	for i := range p.Lessons {
		if p.Lessons[i].ID == lessonID {
			return &p.Lessons[i], i
		}
	}
	return nil, -1
}

// LessonLocked reports whether the lesson at index idx is still locked.
// The first lesson is always open; every later lesson opens when its
// predecessor is completed.
func (p *Plan) LessonLocked(idx int) bool {
	return idx > 0 && !p.Lessons[idx-1].IsCompleted
}

func (p *Plan) AllCompleted() bool {
	if len(p.Lessons) == 0 {
		return false
	}
	for i := range p.Lessons {
		if !p.Lessons[i].IsCompleted {
			return false
		}
	}
	return true
}

type AppSettings struct {
	RemindersEnabled bool   `json:"remindersEnabled"`
	ReminderTime     string `json:"reminderTime"`
	Theme            string `json:"theme"`
}
