package services

import (
	goContext "context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/skillbites-ai/bites_api/model"
	"github.com/skillbites-ai/bites_api/sanitize"
	"github.com/skillbites-ai/bites_api/shared"
)

const GENERATOR_SVC = "generator_svc"

const generatorModel = "gemini-2.5-flash"

const promptCacheTTL = time.Hour

// ContentGenerator produces the raw model output for a prompt. The Gemini
// client satisfies it in production; tests substitute a canned one.
type ContentGenerator interface {
	GenerateContent(ctx goContext.Context, prompt string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) GenerateContent(ctx goContext.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("no response from AI model")
	}
	return text, nil
}

// responseCache holds raw model output keyed by prompt, so identical
// requests within the TTL skip a paid model invocation. RedisService
// satisfies it.
type responseCache interface {
	Get(ctx goContext.Context, key string) (string, error)
	Set(ctx goContext.Context, key string, value interface{}, expiration time.Duration) error
}

// GeneratorService builds curricula by prompting the model and repairing
// whatever comes back through the plan sanitizer. One generation per
// session may be outstanding at a time.
type GeneratorService struct {
	context.DefaultService

	stateSvc *StateService
	cache    responseCache

	apiKey    string
	generator ContentGenerator

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func (svc GeneratorService) Id() string {
	return GENERATOR_SVC
}

func (svc *GeneratorService) Configure(ctx *context.Context) error {
	svc.apiKey = os.Getenv("GEMINI_API_KEY")
	svc.inFlight = make(map[string]struct{})
	return svc.DefaultService.Configure(ctx)
}

func (svc *GeneratorService) Start() error {
	svc.stateSvc = svc.Service(STATE_SVC).(*StateService)
	svc.cache = svc.Service(REDIS_SVC).(*RedisService)

	if svc.generator != nil {
		return nil
	}
	if svc.apiKey == "" {
		log.Warn("GEMINI_API_KEY not set, plan generation disabled")
		return nil
	}

	client, err := genai.NewClient(goContext.Background(), &genai.ClientConfig{
		APIKey: svc.apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create genai client: %w", err)
	}
	svc.generator = &geminiGenerator{client: client, model: generatorModel}
	return nil
}

// planParams are the lesson-count and depth knobs derived from the program
// type and the user's stated time budget.
type planParams struct {
	NumLessons       int
	MinutesPerLesson int
	ParagraphCount   int
	QuizCount        int
	ExampleCount     int
}

// derivePlanParams scales content depth with the per-lesson time budget.
// A 1-day program splits its total budget across 5 modules; a 7-day
// program reads the budget as minutes per day. Budgets above 25 minutes
// ramp up paragraph and quiz counts, capped to keep generation reliable.
func derivePlanParams(programType, timeBudget string) planParams {
	p := planParams{MinutesPerLesson: 15}

	if programType == shared.ProgramOneDay {
		p.NumLessons = 5
		totalMinutes := 60
		if strings.Contains(timeBudget, "hour") {
			if hours, ok := leadingInt(timeBudget); ok {
				totalMinutes = hours * 60
			}
		} else if n, ok := leadingInt(timeBudget); ok {
			totalMinutes = n
		} else {
			totalMinutes = 30
		}
		p.MinutesPerLesson = totalMinutes / p.NumLessons
	} else {
		p.NumLessons = 7
		if n, ok := leadingInt(timeBudget); ok {
			p.MinutesPerLesson = n
		}
	}

	p.ParagraphCount = maxInt(3, ceilDiv(p.MinutesPerLesson, 3))
	p.QuizCount = 3
	p.ExampleCount = 2

	if p.MinutesPerLesson > 25 {
		p.ParagraphCount = minInt(10, ceilDiv(p.MinutesPerLesson, 3))
		p.QuizCount = minInt(5, ceilDiv(p.MinutesPerLesson, 6))
		p.ExampleCount = 3
	}

	return p
}

// leadingInt parses the integer prefix of a free-form duration string,
// e.g. "20 mins/day" -> 20, "4 hours" -> 4. A prefix too long to fit an
// int counts as unparseable rather than overflowing.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func buildPrompt(goal, difficulty, programType, timeBudget string, p planParams) string {
	var durationContext string
	var structureInstruction string
	if programType == shared.ProgramOneDay {
		durationContext = fmt.Sprintf("a single day intensive crash course with total duration %s (approx %d minutes per module)", timeBudget, p.MinutesPerLesson)
		structureInstruction = fmt.Sprintf("Divide the day into %d logical modules/steps.", p.NumLessons)
	} else {
		durationContext = fmt.Sprintf("a 7-day habit building program with %s per day", timeBudget)
		structureInstruction = "Create a 7-day plan."
	}

	depthInstruction := "Concise and actionable."
	if p.MinutesPerLesson >= 30 {
		depthInstruction = "EXTENSIVE DEPTH. This is a deep-dive masterclass. You MUST provide detailed explanations."
	}

	return fmt.Sprintf(`Create a micro-learning plan for the goal: %q.
Difficulty Level: %s.
Program Type: %s (%s).
Target duration per lesson/module: %d minutes.

%s
The plan must have exactly %d lessons/modules.

CRITICAL INSTRUCTIONS:
1. Return VALID JSON only.
2. Do NOT use Markdown code blocks (no `+"```json"+`).
3. Do NOT include comments in the JSON (like // ...).
4. For each lesson:
   - The 'duration' field MUST be exactly %d.
   - 'content': %s Include at least %d paragraphs.
   - 'realWorldExamples': An array of %d distinct strings.
   - 'practicalTask': A complex, multi-step practical exercise or calculation task.
   - 'gamifiedQuiz': An array of exactly %d questions. Each question must have 'options' (array of strings) and 'correctAnswer' (string).

JSON Schema:
{
    "title": %q,
    "difficulty": %q,
    "programType": %q,
    "lessons": [
        {
            "day": 1,
            "title": "Lesson Title",
            "description": "Description",
            "duration": %d,
            "type": "text_and_exercise",
            "content": [
                "Paragraph 1...",
                "Paragraph 2...",
                ... (provide %d paragraphs)
            ],
            "realWorldExamples": ["Example 1", "Example 2", ...],
            "practicalTask": "Detailed task description...",
            "gamifiedQuiz": [
                { "question": "Q?", "options": ["A", "B", "C"], "correctAnswer": "A" },
                ... (provide %d questions)
            ]
        }
    ]
}`,
		goal, difficulty, programType, durationContext, p.MinutesPerLesson,
		structureInstruction, p.NumLessons,
		p.MinutesPerLesson, depthInstruction, p.ParagraphCount,
		p.ExampleCount, p.QuizCount,
		goal, difficulty, programType,
		p.MinutesPerLesson, p.ParagraphCount, p.QuizCount)
}

func promptCacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "plancache:" + hex.EncodeToString(sum[:])
}

// generateWithCache serves identical prompts from the response cache when
// one is wired. Cache failures fall through to a live generation.
func (svc *GeneratorService) generateWithCache(ctx goContext.Context, prompt string) (string, error) {
	key := promptCacheKey(prompt)

	if svc.cache != nil {
		if text, err := svc.cache.Get(ctx, key); err == nil && text != "" {
			return text, nil
		}
	}

	text, err := svc.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, key, text, promptCacheTTL); err != nil {
			log.WithField("error", err.Error()).Debug("Failed to cache generated plan")
		}
	}

	return text, nil
}

// stripFences removes markdown code fences the model sometimes emits
// despite instructions.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func (svc *GeneratorService) beginGeneration(sessionID string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if _, busy := svc.inFlight[sessionID]; busy {
		return false
	}
	svc.inFlight[sessionID] = struct{}{}
	return true
}

func (svc *GeneratorService) endGeneration(sessionID string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	delete(svc.inFlight, sessionID)
}

// GeneratePlan prompts the model, repairs the response and installs the
// resulting plan. A response the sanitizer cannot turn into a plan is
// dropped: the session keeps whatever plan it had.
func (svc *GeneratorService) GeneratePlan(ctx goContext.Context, sessionID, goal, difficulty, programType, timeBudget string) (*model.Plan, error) {
	if svc.generator == nil {
		return nil, shared.NewServiceUnavailableError(errors.New("generator not configured"), "API key is missing. Please check the GEMINI_API_KEY environment variable.")
	}

	if !shared.ValidDifficulty(difficulty) {
		difficulty = shared.DifficultyBeginner
	}
	if programType != shared.ProgramOneDay {
		programType = shared.ProgramSevenDays
	}
	if timeBudget == "" {
		timeBudget = "15 mins/day"
	}

	if !svc.beginGeneration(sessionID) {
		return nil, shared.NewConflictError(errors.New("generation already in progress"), "A plan is already being generated for this session")
	}
	defer svc.endGeneration(sessionID)

	params := derivePlanParams(programType, timeBudget)
	prompt := buildPrompt(goal, difficulty, programType, timeBudget, params)

	text, err := svc.generateWithCache(ctx, prompt)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate plan")
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(stripFences(text)), &data); err != nil {
		return nil, shared.NewInternalError(err, "Failed to parse generated plan")
	}

	data["goalId"] = "goal-" + uuid.New().String()

	plan := sanitize.Plan(data)
	if plan == nil {
		log.WithFields(log.Fields{
			"session_id": sessionID,
			"goal":       goal,
		}).Warn("Generated payload had no usable lessons, plan not installed")
		return nil, nil
	}

	svc.stateSvc.SavePlan(sessionID, plan)
	svc.stateSvc.SetView(sessionID, shared.ViewPlan)
	return plan, nil
}

// NextLevel regenerates the current plan one difficulty up, replacing it
// wholesale.
func (svc *GeneratorService) NextLevel(ctx goContext.Context, sessionID string) (*model.Plan, error) {
	plan := svc.stateSvc.GetPlan(sessionID)
	if plan == nil {
		return nil, shared.NewNotFoundError(errors.New("no plan to level up"), "No plan found for this session")
	}

	title := plan.Title
	if title == "" {
		title = "Next Level Goal"
	}
	programType := plan.ProgramType
	if programType == "" {
		programType = shared.ProgramSevenDays
	}

	return svc.GeneratePlan(ctx, sessionID, title, shared.DifficultyAdvanced, programType, "20 mins/day")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
