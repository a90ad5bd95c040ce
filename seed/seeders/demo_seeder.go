package seeders

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skillbites-ai/bites_api/model"
	"github.com/skillbites-ai/bites_api/shared"
)

// DemoSeeder installs a ready-made session with a sample plan so the API
// can be explored without generating one.
type DemoSeeder struct {
	db *gorm.DB
}

func NewDemoSeeder(db *gorm.DB) *DemoSeeder {
	return &DemoSeeder{db: db}
}

func (s *DemoSeeder) Seed(deviceID string) error {
	if err := s.db.AutoMigrate(&model.Session{}, &model.StateSlot{}); err != nil {
		return err
	}

	session, err := s.ensureSession(deviceID)
	if err != nil {
		return err
	}

	user := model.User{
		ID:               shared.DefaultUserID,
		Email:            shared.DefaultUserEmail,
		Name:             "Demo",
		SubscriptionTier: shared.TierPro,
		History:          []string{},
	}
	if err := s.writeSlot(session.ID, shared.SlotUser, user); err != nil {
		return err
	}

	if err := s.writeSlot(session.ID, shared.SlotPlan, samplePlan()); err != nil {
		return err
	}
	if err := s.writeSlot(session.ID, shared.SlotViewState, shared.ViewPlan); err != nil {
		return err
	}
	if err := s.writeSlot(session.ID, shared.SlotLegal, true); err != nil {
		return err
	}

	log.Printf("Seeded demo session %s for device %s", session.ID, deviceID)
	return nil
}

func (s *DemoSeeder) ensureSession(deviceID string) (*model.Session, error) {
	var session model.Session
	err := s.db.Where("device_id = ?", deviceID).First(&session).Error
	if err == nil {
		return &session, nil
	}

	now := time.Now()
	session = model.Session{
		ID:           uuid.New().String(),
		DeviceID:     deviceID,
		SessionStart: now,
		LastActivity: now,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *DemoSeeder) writeSlot(sessionID, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	now := time.Now()
	slot := &model.StateSlot{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Key:       key,
		Value:     data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(slot).Error
}

func samplePlan() *model.Plan {
	selfCheck := model.SelfCheck{
		Question:      "Did you complete this lesson?",
		Options:       []string{"Yes", "No"},
		CorrectAnswer: "Yes",
	}

	lessons := []model.Lesson{
		{
			ID:          "demo-lesson-1",
			Day:         1,
			Title:       "Day 1: Know Your Message",
			Description: "Find the one idea your talk exists to deliver.",
			Duration:    15,
			Type:        shared.LessonTypeTextAndExercise,
			Content: []string{
				"Every memorable talk is built around a single core message. Before you write a word, finish this sentence: \"If the audience remembers one thing, it should be...\"",
				"Supporting points exist to serve that message. Anything that does not is a candidate for cutting, no matter how interesting it is on its own.",
				"Write your core message on a sticky note and keep it in view while you prepare. It is the test every slide and story has to pass.",
			},
			Exercise: &model.Exercise{
				Title:       "Find Your Core Message",
				Description: "Pick a topic you know well. Write its core message in one sentence of 15 words or fewer.",
			},
			SelfCheck:         selfCheck,
			RealWorldExamples: []string{"A product launch keynote built around \"it just works\"", "A wedding toast with one story and one wish"},
			PracticalTask:     "Draft a 3-sentence opening for a talk on your topic: hook, core message, roadmap.",
			GamifiedQuiz: []model.QuizQuestion{
				{
					Question:      "What should every part of a talk serve?",
					Options:       []string{"The slides", "The core message", "The time limit"},
					CorrectAnswer: "The core message",
				},
			},
		},
		{
			ID:          "demo-lesson-2",
			Day:         2,
			Title:       "Day 2: Structure That Carries",
			Description: "Arrange your material so the audience never gets lost.",
			Duration:    15,
			Type:        shared.LessonTypeTextAndExercise,
			Content: []string{
				"Audiences cannot rewind a live talk, so structure does the remembering for them. Tell them where you are going, take them there, then remind them where they have been.",
				"The rule of three is the workhorse of spoken structure: three sections, three examples, three takeaways. More than that and retention drops sharply.",
				"Transitions are structure made audible. A single sentence like \"that was the problem; here is what we did about it\" keeps everyone on the map.",
			},
			Exercise: &model.Exercise{
				Title:       "Outline in Threes",
				Description: "Take yesterday's core message and outline a talk around it with exactly three sections.",
			},
			SelfCheck:         selfCheck,
			RealWorldExamples: []string{"\"Tell them what you'll tell them\" in commencement speeches", "Three-act structure in film"},
			PracticalTask:     "Write the three transition sentences that join your sections together.",
			GamifiedQuiz: []model.QuizQuestion{
				{
					Question:      "Why does the rule of three work in talks?",
					Options:       []string{"It sounds poetic", "It matches what listeners can retain", "It fills time"},
					CorrectAnswer: "It matches what listeners can retain",
				},
			},
		},
		{
			ID:          "demo-lesson-3",
			Day:         3,
			Title:       "Day 3: Delivery Drills",
			Description: "Practice pace, pauses and presence.",
			Duration:    15,
			Type:        shared.LessonTypeVoicePractice,
			Content: []string{
				"Nerves push speakers to rush. Deliberate pauses feel endless from the stage and completely natural from the seats.",
				"Record yourself delivering your opening. Listen for filler words and note where a pause would land harder than a word.",
			},
			Exercise: &model.Exercise{
				Title:       "The Pause Drill",
				Description: "Deliver your opening three times, adding a full two-second pause after the hook each time.",
			},
			VoicePrompt:       "Deliver your three-sentence opening aloud, pausing after the first sentence.",
			SelfCheck:         selfCheck,
			RealWorldExamples: []string{"Comedians holding a beat before the punchline"},
			PracticalTask:     "Record your opening twice, once rushed and once with pauses, and compare.",
			GamifiedQuiz: []model.QuizQuestion{
				{
					Question:      "How do deliberate pauses read to an audience?",
					Options:       []string{"As forgetting your lines", "As natural emphasis", "As wasted time"},
					CorrectAnswer: "As natural emphasis",
				},
			},
		},
	}

	return &model.Plan{
		ID:          "plan-demo",
		GoalID:      "goal-demo",
		Title:       "Confident Public Speaking",
		ProgramType: shared.ProgramSevenDays,
		Lessons:     lessons,
	}
}
