package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbites-ai/bites_api/shared"
)

func newTestSession(t *testing.T) *SessionService {
	t.Helper()

	sql := newTestSqlite(t)
	state := &StateService{storageSvc: &StorageService{sqlSvc: sql}}

	return &SessionService{
		sqlSvc:        sql,
		jwtSvc:        &JWTService{AccessTokenDuration: 24 * time.Hour, jwtSecretKey: "test-secret"},
		stateSvc:      state,
		navigationSvc: &NavigationService{stateSvc: state, librarySvc: newTestLibrary()},
	}
}

func TestCreateSessionNewDevice(t *testing.T) {
	svc := newTestSession(t)

	resp, err := svc.CreateOrGetSession("device-1")
	require.NoError(t, err)

	require.NotNil(t, resp.Session)
	assert.Equal(t, "device-1", resp.Session.DeviceID)
	assert.True(t, resp.Session.IsActive)

	require.NotNil(t, resp.Token)
	assert.NotEmpty(t, resp.Token.AccessToken)

	require.NotNil(t, resp.State)
	assert.Equal(t, shared.ViewLanding, resp.State.View)
	assert.Equal(t, shared.DefaultUserName, resp.State.User.Name)
	assert.NotEmpty(t, resp.State.User.LastActive)
}

func TestCreateSessionSameDeviceResumes(t *testing.T) {
	svc := newTestSession(t)

	first, err := svc.CreateOrGetSession("device-1")
	require.NoError(t, err)

	second, err := svc.CreateOrGetSession("device-1")
	require.NoError(t, err)

	assert.Equal(t, first.Session.ID, second.Session.ID)
}

func TestCreateSessionDistinctDevices(t *testing.T) {
	svc := newTestSession(t)

	a, err := svc.CreateOrGetSession("device-a")
	require.NoError(t, err)
	b, err := svc.CreateOrGetSession("device-b")
	require.NoError(t, err)

	assert.NotEqual(t, a.Session.ID, b.Session.ID)
}

func TestCreateSessionTokenRoundTrip(t *testing.T) {
	svc := newTestSession(t)

	resp, err := svc.CreateOrGetSession("device-1")
	require.NoError(t, err)

	sessionID, err := svc.jwtSvc.VerifyJWTToken(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.ID, sessionID)
}

func TestCreateSessionRepairsView(t *testing.T) {
	svc := newTestSession(t)

	first, err := svc.CreateOrGetSession("device-1")
	require.NoError(t, err)
	sessionID := first.Session.ID

	// Leave a dangling lesson view behind, as an interrupted run would.
	svc.stateSvc.SavePlan(sessionID, testPlan(2))
	svc.stateSvc.SetView(sessionID, shared.ViewLesson)
	svc.stateSvc.SetActiveLessonID(sessionID, "lesson-99")

	resumed, err := svc.CreateOrGetSession("device-1")
	require.NoError(t, err)
	assert.Equal(t, shared.ViewPlan, resumed.State.View)
}

func TestSetName(t *testing.T) {
	svc := newTestSession(t)

	user, err := svc.SetName("s1", "Alex")
	require.NoError(t, err)
	assert.Equal(t, "Alex", user.Name)
	assert.Equal(t, shared.TierPro, user.SubscriptionTier)

	assert.Equal(t, "Alex", svc.stateSvc.GetUser("s1").Name)
	assert.Equal(t, shared.ViewNewGoal, svc.stateSvc.GetView("s1"))
}

func TestResetReturnsFreshSnapshot(t *testing.T) {
	svc := newTestSession(t)

	_, err := svc.SetName("s1", "Alex")
	require.NoError(t, err)
	svc.stateSvc.SavePlan("s1", testPlan(2))
	svc.stateSvc.SetTheme("s1", shared.ThemeDark)

	snap, err := svc.Reset("s1")
	require.NoError(t, err)

	assert.Equal(t, shared.DefaultUserName, snap.User.Name)
	assert.Nil(t, snap.Plan)
	assert.Equal(t, shared.ViewLanding, snap.View)
	assert.Equal(t, shared.ThemeDark, snap.Theme)
}
