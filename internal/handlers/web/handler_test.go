package web_test

import (
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	entities "github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/handlers/web"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	arenamock "github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena/mock"
	"github.com/KirkDiggler/rpg-arena/internal/render/card"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

const testSessionID = "sess_1"

type HandlerTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockArena *arenamock.MockService
	router    *gin.Engine
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockArena = arenamock.NewMockService(s.ctrl)

	handler, err := web.NewHandler(&web.HandlerConfig{ArenaService: s.mockArena})
	s.Require().NoError(err)
	s.router = web.NewRouter(handler)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// do sends a request carrying the session cookie when sessionID is set
func (s *HandlerTestSuite) do(method, target, sessionID string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: web.SessionCookie, Value: sessionID})
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) sessionCookie(rec *httptest.ResponseRecorder) string {
	for _, c := range rec.Result().Cookies() {
		if c.Name == web.SessionCookie {
			return c.Value
		}
	}
	return ""
}

func (s *HandlerTestSuite) options() *arena.ListOptionsOutput {
	catalog := testutils.CreateTestCatalog()
	return &arena.ListOptionsOutput{
		Classes: entities.Classes(),
		Weapons: catalog.Weapons,
		Armors:  catalog.Armors,
	}
}

func (s *HandlerTestSuite) heroForm() url.Values {
	return url.Values{
		"unit_class": {entities.ClassWarrior},
		"weapon":     {testutils.TestSword.Name},
		"armor":      {testutils.TestLeather.Name},
		"name":       {"Hero"},
	}
}

func (s *HandlerTestSuite) activeFight() *arena.FightOutput {
	return &arena.FightOutput{
		SessionID: testSessionID,
		Lines:     []string{"You hit the enemy!", "The enemy hit you!"},
		Result:    "You hit the enemy!\nThe enemy hit you!",
		Status:    combat.StatusActive,
		Player: &combat.Snapshot{
			Name: "Hero", ClassName: entities.ClassWarrior,
			Health: 50, MaxHealth: 60, Stamina: 20, MaxStamina: 30,
			SkillName: "Ferocious Kick",
		},
		Opponent: &combat.Snapshot{
			Name: "Villain", ClassName: entities.ClassRobber,
			Health: 40, MaxHealth: 50, Stamina: 10, MaxStamina: 25,
			SkillName: "Powerful Thrust",
		},
	}
}

func (s *HandlerTestSuite) TestNewHandler_RequiresService() {
	_, err := web.NewHandler(&web.HandlerConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = web.NewHandler(nil)
	s.Require().Error(err)
}

func (s *HandlerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestIndex() {
	rec := s.do(http.MethodGet, "/", "", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `href="/choose-hero"`)
}

func (s *HandlerTestSuite) TestChooseHeroPage_IssuesSession() {
	s.mockArena.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		Return(&arena.CreateSessionOutput{SessionID: testSessionID}, nil)
	s.mockArena.EXPECT().ListOptions(gomock.Any(), gomock.Any()).Return(s.options(), nil)

	s.mockArena.EXPECT().
		ChooseHero(gomock.Any(), gomock.Any()).
		Return(&arena.ChooseOutput{SessionID: testSessionID, Side: entities.SidePlayer}, nil)

	// The page itself does not need a session; the POST issues one
	rec := s.do(http.MethodGet, "/choose-hero", "", nil)

	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, web.TitleChooseHero)
	s.Contains(body, `action="/choose-hero"`)
	s.Contains(body, "Ferocious Kick")
	s.Contains(body, testutils.TestAxe.Name)

	rec = s.do(http.MethodPost, "/choose-hero", "", s.heroForm())
	s.Equal(http.StatusFound, rec.Code)
	s.Equal(testSessionID, s.sessionCookie(rec))
}

func (s *HandlerTestSuite) TestChooseHero_Redirects() {
	s.mockArena.EXPECT().
		ChooseHero(gomock.Any(), &arena.ChooseInput{
			SessionID: testSessionID,
			Selection: entities.Selection{
				ClassName:  entities.ClassWarrior,
				WeaponName: testutils.TestSword.Name,
				ArmorName:  testutils.TestLeather.Name,
				Name:       "Hero",
			},
		}).
		Return(&arena.ChooseOutput{SessionID: testSessionID, Side: entities.SidePlayer}, nil)

	rec := s.do(http.MethodPost, "/choose-hero", testSessionID, s.heroForm())

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/choose-enemy", rec.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestChooseEnemy_RedirectsToFight() {
	s.mockArena.EXPECT().
		ChooseEnemy(gomock.Any(), gomock.Any()).
		Return(&arena.ChooseOutput{SessionID: testSessionID, Side: entities.SideOpponent}, nil)

	rec := s.do(http.MethodPost, "/choose-enemy", testSessionID, s.heroForm())

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/fight", rec.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestChooseHero_InvalidSelectionRerendersForm() {
	s.mockArena.EXPECT().
		ChooseHero(gomock.Any(), gomock.Any()).
		Return(nil, errors.InvalidArgument("weapon is not in the catalog"))
	s.mockArena.EXPECT().ListOptions(gomock.Any(), gomock.Any()).Return(s.options(), nil)

	form := s.heroForm()
	form.Set("name", "Stubborn")
	rec := s.do(http.MethodPost, "/choose-hero", testSessionID, form)

	s.Equal(http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	s.Contains(body, "weapon is not in the catalog")
	s.Contains(body, `value="Stubborn"`)
}

func (s *HandlerTestSuite) TestChooseHero_ExpiredSessionIsReplaced() {
	gomock.InOrder(
		s.mockArena.EXPECT().
			ChooseHero(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input *arena.ChooseInput) (*arena.ChooseOutput, error) {
				s.Equal("sess_stale", input.SessionID)
				return nil, errors.NotFound("session not found")
			}),
		s.mockArena.EXPECT().
			CreateSession(gomock.Any(), gomock.Any()).
			Return(&arena.CreateSessionOutput{SessionID: "sess_2"}, nil),
		s.mockArena.EXPECT().
			ChooseHero(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input *arena.ChooseInput) (*arena.ChooseOutput, error) {
				s.Equal("sess_2", input.SessionID)
				return &arena.ChooseOutput{SessionID: "sess_2"}, nil
			}),
	)

	rec := s.do(http.MethodPost, "/choose-hero", "sess_stale", s.heroForm())

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("sess_2", s.sessionCookie(rec))
}

func (s *HandlerTestSuite) TestFight_RedirectsUntilBothChosen() {
	s.mockArena.EXPECT().
		StartFight(gomock.Any(), &arena.StartFightInput{SessionID: testSessionID}).
		Return(nil, errors.FailedPrecondition("both sides must be chosen before a fight"))

	rec := s.do(http.MethodGet, "/fight", testSessionID, nil)

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/", rec.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestFight_RendersStart() {
	out := s.activeFight()
	out.Lines = []string{arena.MsgFightStarted}
	s.mockArena.EXPECT().StartFight(gomock.Any(), gomock.Any()).Return(out, nil)

	rec := s.do(http.MethodGet, "/fight", testSessionID, nil)

	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, arena.MsgFightStarted)
	s.Contains(body, "Health: 50.0 / 60.0")
	s.Contains(body, `href="/fight/hit"`)
}

func (s *HandlerTestSuite) TestActions_WithoutFightRedirect() {
	notStarted := errors.FailedPrecondition("The fight has not started.")
	s.mockArena.EXPECT().PlayerHit(gomock.Any(), gomock.Any()).Return(nil, notStarted)
	s.mockArena.EXPECT().PlayerUseSkill(gomock.Any(), gomock.Any()).Return(nil, notStarted)
	s.mockArena.EXPECT().PassTurn(gomock.Any(), gomock.Any()).Return(nil, notStarted)

	for _, path := range []string{"/fight/hit", "/fight/use-skill", "/fight/pass-turn"} {
		s.Run(path, func() {
			rec := s.do(http.MethodGet, path, testSessionID, nil)
			s.Equal(http.StatusFound, rec.Code)
			s.Equal("/", rec.Header().Get("Location"))
		})
	}
}

func (s *HandlerTestSuite) TestHit_RendersTurn() {
	s.mockArena.EXPECT().
		PlayerHit(gomock.Any(), &arena.ActionInput{SessionID: testSessionID}).
		Return(s.activeFight(), nil)

	rec := s.do(http.MethodGet, "/fight/hit", testSessionID, nil)

	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, "You hit the enemy!")
	s.Contains(body, "The enemy hit you!")
	s.Contains(body, `href="/fight/use-skill"`)
}

func (s *HandlerTestSuite) TestEndedFight_OnlyOffersEnd() {
	out := s.activeFight()
	out.Status = combat.StatusEnded
	out.Outcome = combat.OutcomeVictory
	out.Lines = []string{combat.OutcomeVictory.Message()}
	s.mockArena.EXPECT().PassTurn(gomock.Any(), gomock.Any()).Return(out, nil)

	rec := s.do(http.MethodGet, "/fight/pass-turn", testSessionID, nil)

	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.NotContains(body, `href="/fight/hit"`)
	s.Contains(body, `href="/fight/end-fight"`)
}

func (s *HandlerTestSuite) TestEndFight_RedirectsHome() {
	s.mockArena.EXPECT().
		EndFight(gomock.Any(), &arena.EndFightInput{SessionID: testSessionID}).
		Return(&arena.EndFightOutput{}, nil)

	rec := s.do(http.MethodGet, "/fight/end-fight", testSessionID, nil)

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/", rec.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestAction_InternalErrorRendersErrorPage() {
	s.mockArena.EXPECT().
		PlayerHit(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("catalog lost the weapon"))

	rec := s.do(http.MethodGet, "/fight/hit", testSessionID, nil)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "catalog lost the weapon")
}

func (s *HandlerTestSuite) TestCard() {
	s.mockArena.EXPECT().GetFight(gomock.Any(), gomock.Any()).Return(s.activeFight(), nil)

	rec := s.do(http.MethodGet, "/fight/card.png?scale=2", testSessionID, nil)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	s.Require().NoError(err)
	s.Equal(card.Width*2, img.Bounds().Dx())
}

func (s *HandlerTestSuite) TestCard_BadScale() {
	for _, scale := range []string{"huge", "NaN", "nan"} {
		s.Run(scale, func() {
			rec := s.do(http.MethodGet, "/fight/card.png?scale="+scale, testSessionID, nil)
			s.Equal(http.StatusBadRequest, rec.Code)
		})
	}
}

func (s *HandlerTestSuite) TestCard_NoFight() {
	s.mockArena.EXPECT().
		GetFight(gomock.Any(), gomock.Any()).
		Return(&arena.FightOutput{SessionID: testSessionID, Status: combat.StatusIdle}, nil)

	rec := s.do(http.MethodGet, "/fight/card.png", testSessionID, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}
