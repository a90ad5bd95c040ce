package services

import (
	goContext "context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/skillbites-ai/bites_api/shared"
)

// RateLimitService guards expensive endpoints with redis-backed fixed
// windows. Plan generation is the endpoint that matters: every call is a
// paid model invocation. The limiter fails open when redis is down so a
// cache outage never blocks the product.
type RateLimitService struct {
	context.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	redisSvc *RedisService
}

type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.initDefaultConfigs()
	return nil
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		"plan_generate": {
			EndpointType: "plan_generate",
			MaxRequests:  10,
			WindowSize:   time.Hour,
			Description:  "Plan generation rate limit per session",
			IsActive:     true,
		},
		"session_create": {
			EndpointType: "session_create",
			MaxRequests:  20,
			WindowSize:   15 * time.Minute,
			Description:  "Session creation rate limit per device",
			IsActive:     true,
		},
		"api_general": {
			EndpointType: "api_general",
			MaxRequests:  1000,
			WindowSize:   time.Hour,
			Description:  "General API rate limit per IP",
			IsActive:     true,
		},
	}
}

// IsAllowed checks and advances the fixed window for the identifier.
// Remaining is -1 when the endpoint has no active config.
func (svc *RateLimitService) IsAllowed(identifier, endpointType string) (allowed bool, remaining int, retryAfter time.Duration, err error) {
	svc.mutex.RLock()
	config, exists := svc.configs[endpointType]
	svc.mutex.RUnlock()

	if !exists || !config.IsActive {
		return true, -1, 0, nil
	}

	ctx, cancel := goContext.WithTimeout(goContext.Background(), 2*time.Second)
	defer cancel()

	key := fmt.Sprintf("ratelimit:%s:%s", endpointType, identifier)

	count, err := svc.redisSvc.Increment(ctx, key)
	if err != nil {
		return false, 0, 0, err
	}
	if count == 1 {
		if err := svc.redisSvc.Expire(ctx, key, config.WindowSize); err != nil {
			log.Printf("Failed to set rate limit window for %s: %v", key, err)
		}
	}

	if count > int64(config.MaxRequests) {
		ttl, err := svc.redisSvc.TTL(ctx, key)
		if err != nil || ttl < 0 {
			ttl = config.WindowSize
		}
		return false, 0, ttl, nil
	}

	return true, config.MaxRequests - int(count), 0, nil
}

// RateLimit builds a middleware for one endpoint type. Identifier
// resolution prefers the authenticated session, then the device id, then
// the client IP.
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := svc.getIdentifier(c)

		allowed, remaining, retryAfter, err := svc.IsAllowed(identifier, endpointType)
		if err != nil {
			log.Printf("Rate limit check error for %s (%s): %v", endpointType, identifier, err)
			// Fail open: a limiter outage must not block users.
			return c.Next()
		}

		if remaining >= 0 {
			c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}

		if !allowed {
			if retryAfter > 0 {
				c.Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			}
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, svc.getRateLimitMessage(endpointType), nil)
		}

		return c.Next()
	}
}

func (svc *RateLimitService) getIdentifier(c *fiber.Ctx) string {
	if sessionID, ok := c.Locals(shared.SessionID).(string); ok && sessionID != "" {
		return sessionID
	}
	if deviceID := getDeviceIDFromRequest(c); deviceID != "" {
		return deviceID
	}
	return getClientIP(c)
}

func (svc *RateLimitService) getRateLimitMessage(endpointType string) string {
	messages := map[string]string{
		"plan_generate":  "Too many plan generations. Please try again later.",
		"session_create": "Too many session creation attempts. Please try again later.",
		"api_general":    "Too many requests. Please slow down.",
	}

	if message, exists := messages[endpointType]; exists {
		return message
	}

	return "Too many requests. Please try again later."
}

func getClientIP(c *fiber.Ctx) string {
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" {
				return ip
			}
		}
	}

	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.Context().RemoteAddr().String()
	}

	return ip
}

func getDeviceIDFromRequest(c *fiber.Ctx) string {
	if deviceID := c.Get("X-Device-ID"); deviceID != "" {
		return deviceID
	}

	if deviceID := c.Query("device_id"); deviceID != "" {
		return deviceID
	}

	var reqBody map[string]interface{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&reqBody); err == nil {
			if deviceID, exists := reqBody["device_id"]; exists {
				if deviceIDStr, ok := deviceID.(string); ok {
					return deviceIDStr
				}
			}
		}
	}

	return ""
}
