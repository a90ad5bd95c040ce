package services

import (
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/skillbites-ai/bites_api/dto"
	"github.com/skillbites-ai/bites_api/model"
	"github.com/skillbites-ai/bites_api/shared"
)

// SessionService maps devices to sessions. Each device owns one session;
// resuming refreshes activity, stamps the user's lastActive marker and
// runs the view repair pass before the state snapshot goes out.
type SessionService struct {
	context.DefaultService

	sqlSvc        *SqliteService
	jwtSvc        *JWTService
	stateSvc      *StateService
	navigationSvc *NavigationService
}

const SESSION_SVC = "session_svc"

func (svc SessionService) Id() string {
	return SESSION_SVC
}

func (svc *SessionService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *SessionService) Start() error {
	svc.sqlSvc = svc.Service(SQLITE_SVC).(*SqliteService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.stateSvc = svc.Service(STATE_SVC).(*StateService)
	svc.navigationSvc = svc.Service(NAVIGATION_SVC).(*NavigationService)
	return nil
}

func (svc *SessionService) CreateOrGetSession(deviceID string) (*dto.CreateSessionResponse, error) {
	session, err := svc.sqlSvc.GetSessionByDeviceID(deviceID)
	if err == nil && session != nil {
		session.LastActivity = time.Now()
		if err := svc.sqlSvc.UpdateSession(session); err != nil {
			log.Printf("Failed to update session activity: %v", err)
		}
	} else {
		session = &model.Session{
			ID:           uuid.New().String(),
			DeviceID:     deviceID,
			SessionStart: time.Now(),
			LastActivity: time.Now(),
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		session, err = svc.sqlSvc.CreateSession(session)
		if err != nil {
			return nil, shared.NewInternalError(err, "Failed to create session")
		}
	}

	// Stamp return usage before the snapshot goes out.
	user := svc.stateSvc.GetUser(session.ID)
	user.LastActive = time.Now().UTC().Format(time.RFC3339)
	svc.stateSvc.SaveUser(session.ID, user)

	svc.navigationSvc.Repair(session.ID)

	token, err := svc.jwtSvc.GenerateTokenPair(session.ID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to issue session token")
	}

	return &dto.CreateSessionResponse{
		Session: session,
		Token:   token,
		State:   svc.stateSvc.Snapshot(session.ID),
	}, nil
}

// SetName records the user's name from the landing page and routes them
// to the goal form. Named users are kept on the pro tier.
func (svc *SessionService) SetName(sessionID, name string) (model.User, error) {
	user := svc.stateSvc.GetUser(sessionID)
	user.Name = name
	user.SubscriptionTier = shared.TierPro
	svc.stateSvc.SaveUser(sessionID, user)
	svc.stateSvc.SetView(sessionID, shared.ViewNewGoal)
	return user, nil
}

// Reset wipes the session's progress and returns the fresh snapshot.
func (svc *SessionService) Reset(sessionID string) (*dto.StateSnapshot, error) {
	if err := svc.stateSvc.Reset(sessionID); err != nil {
		return nil, shared.NewInternalError(err, "Failed to reset session state")
	}
	return svc.stateSvc.Snapshot(sessionID), nil
}
