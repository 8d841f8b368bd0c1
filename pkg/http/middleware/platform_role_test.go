package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/expertly/expertly/pkg/contract"
	httpx "github.com/expertly/expertly/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	decisions []contract.AuthzDecision
}

func (s *recordingSink) Record(decision contract.AuthzDecision) {
	s.decisions = append(s.decisions, decision)
}

// identityStub installs a fake authenticated identity, standing in for
// the session middleware.
func identityStub(identity *Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity != nil {
			c.Locals(IdentityKey, identity)
		}
		return c.Next()
	}
}

func okHandler(c *fiber.Ctx) error {
	return httpx.WithRepNotDetail(c)
}

func newPlatformApp(identity *Identity, required contract.PlatformRole, sink AuditSink) *fiber.App {
	app := fiber.New()
	app.Use(TraceMiddleware())
	app.Use(identityStub(identity))
	app.Get("/guarded", PlatformRoleMiddleware(PlatformRoleConfig{RequiredRole: required, Audit: sink}), okHandler)
	return app
}

func decodeErr(t *testing.T, body io.Reader) httpx.ResponseErr {
	t.Helper()
	var rep httpx.ResponseErr
	require.NoError(t, json.NewDecoder(body).Decode(&rep))
	return rep
}

func TestPlatformGuardNoRequirementIsNoop(t *testing.T) {
	sink := &recordingSink{}

	// even a request with no identity at all passes a no-op guard
	app := newPlatformApp(nil, "", sink)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, sink.decisions)
}

func TestPlatformGuardUnauthenticated(t *testing.T) {
	sink := &recordingSink{}

	// lowest possible requirement still demands a valid session
	app := newPlatformApp(nil, contract.PlatformRoleUser, sink)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	rep := decodeErr(t, resp.Body)
	assert.Equal(t, httpx.CodeUnauthorized, rep.Code)
	assert.NotEmpty(t, rep.TraceId)

	require.Len(t, sink.decisions, 1)
	assert.False(t, sink.decisions[0].Allowed)
	assert.Equal(t, contract.ReasonUnauthenticated, sink.decisions[0].Reason)
	assert.Equal(t, contract.ScopePlatform, sink.decisions[0].Scope)
}

func TestPlatformGuardInsufficientRole(t *testing.T) {
	sink := &recordingSink{}

	app := newPlatformApp(&Identity{UserId: "u_1", Role: contract.PlatformRoleModerator}, contract.PlatformRoleAdmin, sink)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	rep := decodeErr(t, resp.Body)
	assert.Equal(t, httpx.CodeForbidden, rep.Code)
	// the error surface must not leak either role
	assert.NotContains(t, rep.ErrMsg, "moderator")
	assert.NotContains(t, rep.ErrMsg, "admin")

	require.Len(t, sink.decisions, 1)
	decision := sink.decisions[0]
	assert.False(t, decision.Allowed)
	assert.Equal(t, contract.ReasonInsufficientRole, decision.Reason)
	assert.Equal(t, "u_1", decision.SubjectUserId)
	assert.Equal(t, "admin", decision.RequiredRole)
	assert.Equal(t, "moderator", decision.ActualRole)
	assert.NotEmpty(t, decision.TraceId)
}

func TestPlatformGuardAllowsAndAuditsPrivilegedGrant(t *testing.T) {
	sink := &recordingSink{}

	app := newPlatformApp(&Identity{UserId: "u_2", Role: contract.PlatformRoleAdmin}, contract.PlatformRoleModerator, sink)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	require.Len(t, sink.decisions, 1)
	assert.True(t, sink.decisions[0].Allowed)
	assert.Equal(t, contract.ReasonGranted, sink.decisions[0].Reason)
}

func TestPlatformGuardOrdinaryGrantNotAudited(t *testing.T) {
	sink := &recordingSink{}

	app := newPlatformApp(&Identity{UserId: "u_3", Role: contract.PlatformRoleUser}, contract.PlatformRoleUser, sink)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, sink.decisions)
}

func TestPlatformGuardUnknownActualRoleDenied(t *testing.T) {
	sink := &recordingSink{}

	app := newPlatformApp(&Identity{UserId: "u_4", Role: contract.PlatformRole("superuser")}, contract.PlatformRoleUser, sink)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	require.Len(t, sink.decisions, 1)
	assert.Equal(t, contract.ReasonInsufficientRole, sink.decisions[0].Reason)
}

func TestPlatformGuardNilSinkDoesNotPanic(t *testing.T) {
	app := newPlatformApp(nil, contract.PlatformRoleAdmin, nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
