package middleware

import (
	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/skillbites-ai/bites_api/services"
	"github.com/skillbites-ai/bites_api/shared"
)

// SessionMiddleware resolves the calling session. A Bearer token issued at
// session creation is the primary credential; the X-Device-ID header works
// as a fallback so lightweight clients can skip token storage.
type SessionMiddleware struct {
	context.DefaultService

	sqlSvc *services.SqliteService
	jwtSvc *services.JWTService
}

const SESSION_MIDDLEWARE_SVC = "session_middleware"

func (svc SessionMiddleware) Id() string {
	return SESSION_MIDDLEWARE_SVC
}

func (svc *SessionMiddleware) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *SessionMiddleware) Start() error {
	svc.sqlSvc = svc.Service(services.SQLITE_SVC).(*services.SqliteService)
	svc.jwtSvc = svc.Service(services.JWT_SVC).(*services.JWTService)
	return nil
}

func (svc *SessionMiddleware) RequiredSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authHeader := c.Get("Authorization"); authHeader != "" {
			token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
			}

			sessionID, err := svc.jwtSvc.VerifyJWTToken(token)
			if err != nil || sessionID == "" {
				return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid session token")
			}

			// A valid token must still point at a live session row.
			if session, err := svc.sqlSvc.GetSession(sessionID); err != nil || session == nil {
				return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Unknown session")
			}

			c.Locals(shared.SessionID, sessionID)
			return c.Next()
		}

		if deviceID := c.Get("X-Device-ID"); deviceID != "" {
			session, err := svc.sqlSvc.GetSessionByDeviceID(deviceID)
			if err != nil || session == nil {
				return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Unknown device")
			}

			c.Locals(shared.SessionID, session.ID)
			return c.Next()
		}

		return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Missing session credentials")
	}
}
