package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	entities "github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/handlers/web"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/equipment"
	fightsession "github.com/KirkDiggler/rpg-arena/internal/repositories/fight_session"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

// browser carries the session cookie between requests like a real client
type browser struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions, err := fightsession.NewInMemory(&fightsession.InMemoryConfig{Clock: clock.New()})
	require.NoError(t, err)

	catalog, err := equipment.NewFromCatalog(testutils.CreateTestCatalog())
	require.NoError(t, err)

	service, err := arena.NewOrchestrator(&arena.Config{
		SessionRepo:   sessions,
		EquipmentRepo: catalog,
		IDGenerator:   idgen.NewSequential("sess"),
		EventBus:      events.NewBus(),
		Roller:        testutils.NewFixedRoller(100),
	})
	require.NoError(t, err)

	handler, err := web.NewHandler(&web.HandlerConfig{ArenaService: service})
	require.NoError(t, err)
	return web.NewRouter(handler)
}

func (b *browser) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	b.router.ServeHTTP(rec, req)

	if set := rec.Result().Cookies(); len(set) > 0 {
		b.cookies = set
	}
	return rec
}

func selectionForm(class, weapon, armor, name string) url.Values {
	return url.Values{
		"unit_class": {class},
		"weapon":     {weapon},
		"armor":      {armor},
		"name":       {name},
	}
}

func TestBrowserFlow(t *testing.T) {
	b := &browser{router: newTestRouter(t)}

	rec := b.do(http.MethodGet, "/fight/hit", nil)
	assert.Equal(t, http.StatusFound, rec.Code, "no fight yet")
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.Len(t, b.cookies, 1)
	assert.Equal(t, web.SessionCookie, b.cookies[0].Name)

	rec = b.do(http.MethodGet, "/fight", nil)
	assert.Equal(t, http.StatusFound, rec.Code, "nothing chosen yet")

	rec = b.do(http.MethodPost, "/choose-hero",
		selectionForm(entities.ClassWarrior, testutils.TestAxe.Name, testutils.TestLeather.Name, "  Hero "))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/choose-enemy", rec.Header().Get("Location"))

	rec = b.do(http.MethodPost, "/choose-enemy",
		selectionForm(entities.ClassRobber, "Wand", testutils.TestLeather.Name, "Villain"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown weapon")

	rec = b.do(http.MethodPost, "/choose-enemy",
		selectionForm(entities.ClassRobber, testutils.TestSword.Name, testutils.TestLeather.Name, "Villain"))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/fight", rec.Header().Get("Location"))

	rec = b.do(http.MethodGet, "/fight", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, arena.MsgFightStarted)
	assert.Contains(t, body, "Hero")
	assert.Contains(t, body, "Villain")

	rec = b.do(http.MethodGet, "/fight/hit", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = b.do(http.MethodGet, "/fight/use-skill", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ferocious Kick")

	rec = b.do(http.MethodGet, "/fight/card.png", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = b.do(http.MethodGet, "/fight/end-fight", nil)
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = b.do(http.MethodGet, "/fight/pass-turn", nil)
	assert.Equal(t, http.StatusFound, rec.Code, "fight was abandoned")

	rec = b.do(http.MethodGet, "/fight", nil)
	assert.Equal(t, http.StatusFound, rec.Code, "selections were cleared")
}

func TestAPIFlow(t *testing.T) {
	router := newTestRouter(t)

	call := func(method, path, sessionID, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if sessionID != "" {
			req.Header.Set(web.SessionHeader, sessionID)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := call(http.MethodPost, "/api/v1/sessions", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var session web.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.Equal(t, "sess_1", session.SessionID)

	rec = call(http.MethodPost, "/api/v1/hero", session.SessionID,
		`{"unit_class":"Warrior","weapon":"Axe","armor":"Leather","name":"Hero"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(http.MethodPost, "/api/v1/fight", session.SessionID, "")
	assert.Equal(t, http.StatusConflict, rec.Code, "enemy not chosen")

	rec = call(http.MethodPost, "/api/v1/enemy", session.SessionID,
		`{"unit_class":"Robber","weapon":"Sword","armor":"Leather","name":"Villain"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(http.MethodPost, "/api/v1/fight", session.SessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fight web.FightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fight))
	assert.Equal(t, combat.StatusActive, fight.Status)
	assert.Equal(t, []string{arena.MsgFightStarted}, fight.Lines)
	require.NotNil(t, fight.Player)
	assert.Equal(t, "sess_1:player", fight.Player.ID)
	assert.Equal(t, fight.Player.MaxHealth, fight.Player.Health)

	rec = call(http.MethodPost, "/api/v1/fight/hit", session.SessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fight))
	assert.Less(t, fight.Opponent.Health, fight.Opponent.MaxHealth)

	rec = call(http.MethodGet, "/api/v1/fight", session.SessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var reread web.FightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reread))
	assert.Equal(t, fight.Opponent.Health, reread.Opponent.Health)

	rec = call(http.MethodDelete, "/api/v1/fight", session.SessionID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(http.MethodPost, "/api/v1/fight/hit", session.SessionID, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(http.MethodGet, "/api/v1/fight", "sess_404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
