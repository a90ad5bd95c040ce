package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/skillbites-ai/bites_api/services/handlers"
	"github.com/skillbites-ai/bites_api/shared"
)

// SessionResolver is the middleware contract the HTTP layer needs to put a
// session id on protected routes. Asserted against the registered session
// middleware so this package never imports the middleware package.
type SessionResolver interface {
	RequiredSession() fiber.Handler
}

const SESSION_MIDDLEWARE_SVC = "session_middleware"

type HttpService struct {
	context.DefaultService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	sessionSvc := svc.Service(SESSION_SVC).(*SessionService)
	stateSvc := svc.Service(STATE_SVC).(*StateService)
	generatorSvc := svc.Service(GENERATOR_SVC).(*GeneratorService)
	navigationSvc := svc.Service(NAVIGATION_SVC).(*NavigationService)
	progressSvc := svc.Service(PROGRESS_SVC).(*ProgressService)
	librarySvc := svc.Service(LIBRARY_SVC).(*LibraryService)
	rateLimitSvc := svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	monitoringSvc := svc.Service(MONITORING_SVC).(*MonitoringService)
	sessionMiddleware := svc.Service(SESSION_MIDDLEWARE_SVC).(SessionResolver)

	sessionHandler := handlers.NewSessionHandler(sessionSvc)
	planHandler := handlers.NewPlanHandler(generatorSvc, stateSvc, progressSvc, monitoringSvc)
	lessonHandler := handlers.NewLessonHandler(progressSvc, monitoringSvc)
	stateHandler := handlers.NewStateHandler(stateSvc, navigationSvc)
	libraryHandler := handlers.NewLibraryHandler(librarySvc, stateSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Device-ID",
	}))
	app.Use(MonitoringMiddleware(monitoringSvc))

	app.Get("/ping", svc.ping)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	v1.Post("/session", rateLimitSvc.RateLimit("session_create"), sessionHandler.CreateSession)

	authed := v1.Group("", sessionMiddleware.RequiredSession())

	authed.Get("/state", stateHandler.GetState)
	authed.Post("/navigate", stateHandler.Navigate)
	authed.Post("/legal/accept", stateHandler.AcceptLegal)
	authed.Put("/theme", stateHandler.SetTheme)

	authed.Put("/user/name", sessionHandler.SetName)
	authed.Post("/reset", sessionHandler.Reset)

	authed.Post("/plan/generate", rateLimitSvc.RateLimit("plan_generate"), planHandler.GeneratePlan)
	authed.Post("/plan/next-level", rateLimitSvc.RateLimit("plan_generate"), planHandler.NextLevel)
	authed.Get("/plan", planHandler.GetPlan)
	authed.Get("/certificate", planHandler.Certificate)

	authed.Post("/lessons/:lessonId/select", lessonHandler.SelectLesson)
	authed.Post("/lessons/:lessonId/complete", lessonHandler.CompleteLesson)
	authed.Patch("/lessons/:lessonId", lessonHandler.UpdateLesson)

	authed.Get("/drills", libraryHandler.GetDrills)
	authed.Get("/search", libraryHandler.Search)

	svc.server = app

	log.Info().Int("port", svc.port).Msg("HTTP server started")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func errorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
