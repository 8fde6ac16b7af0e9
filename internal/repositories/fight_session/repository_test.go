package fightsession_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	mockclock "github.com/KirkDiggler/rpg-arena/internal/pkg/clock/mock"
	fightsession "github.com/KirkDiggler/rpg-arena/internal/repositories/fight_session"
	"github.com/KirkDiggler/rpg-arena/internal/testutils"
)

const (
	testSessionID = "sess_test123"
	testTTL       = 30 * time.Minute
)

// RepositoryTestSuite runs the same behaviour checks against every backend
type RepositoryTestSuite struct {
	suite.Suite
	backend string

	ctrl    *gomock.Controller
	clock   *mockclock.MockClock
	now     time.Time
	mr      *miniredis.Miniredis
	cleanup func()

	repo fightsession.Repository
	ctx  context.Context
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{backend: "memory"})
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{backend: "redis"})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.clock = mockclock.NewMockClock(s.ctrl)
	s.clock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.cleanup = func() {}

	switch s.backend {
	case "redis":
		client, mr, cleanup := testutils.CreateTestRedisClient(s.T())
		s.mr = mr
		s.cleanup = cleanup

		repo, err := fightsession.NewRedis(&fightsession.RedisConfig{
			Client: client,
			Clock:  s.clock,
			TTL:    testTTL,
		})
		s.Require().NoError(err)
		s.repo = repo
	default:
		repo, err := fightsession.NewInMemory(&fightsession.InMemoryConfig{
			Clock: s.clock,
			TTL:   testTTL,
		})
		s.Require().NoError(err)
		s.repo = repo
	}
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.cleanup()
	s.ctrl.Finish()
}

func (s *RepositoryTestSuite) advance(d time.Duration) {
	s.now = s.now.Add(d)
	if s.mr != nil {
		s.mr.FastForward(d)
	}
}

func (s *RepositoryTestSuite) createSession() *fightsession.SessionData {
	out, err := s.repo.Create(s.ctx, &fightsession.CreateInput{SessionID: testSessionID})
	s.Require().NoError(err)
	return out.Session
}

func (s *RepositoryTestSuite) fightInProgress() combat.FightState {
	warrior, err := arena.LookupClass(arena.ClassWarrior)
	s.Require().NoError(err)

	f := combat.NewFight(testutils.NewFixedRoller(100))
	f.Start(
		testutils.CreateTestPlayer(warrior, testutils.TestAxe, testutils.TestLeather),
		testutils.CreateTestOpponent(warrior, testutils.TestSword, testutils.TestNoArmor),
	)
	f.PlayerHit()
	return f.State()
}

func (s *RepositoryTestSuite) TestCreate() {
	session := s.createSession()

	s.Equal(testSessionID, session.ID)
	s.True(session.CreatedAt.Equal(s.now))
	s.True(session.ExpiresAt.Equal(s.now.Add(testTTL)))
	s.Nil(session.Player)
	s.Equal(combat.Status(""), session.Fight.Status)

	_, err := s.repo.Create(s.ctx, &fightsession.CreateInput{SessionID: testSessionID})
	s.Error(err)
	s.Equal(errors.CodeAlreadyExists, errors.GetCode(err))
}

func (s *RepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, &fightsession.CreateInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, &fightsession.GetInput{SessionID: "nope"})

	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestUpdateRoundTrip() {
	session := s.createSession()
	session.Player = testutils.CreateTestSelection(arena.ClassWarrior, "Hero")
	session.Opponent = testutils.CreateTestSelection(arena.ClassRobber, "Villain")
	session.Fight = s.fightInProgress()

	s.advance(time.Minute)
	updated, err := s.repo.Update(s.ctx, &fightsession.UpdateInput{Session: session})
	s.Require().NoError(err)
	s.True(updated.Session.UpdatedAt.Equal(s.now))
	s.True(updated.Session.ExpiresAt.Equal(s.now.Add(testTTL)))

	got, err := s.repo.Get(s.ctx, &fightsession.GetInput{SessionID: testSessionID})
	s.Require().NoError(err)

	s.Equal(session.Player, got.Session.Player)
	s.Equal(session.Opponent, got.Session.Opponent)
	s.Equal(session.Fight, got.Session.Fight)
	s.True(got.Session.CreatedAt.Equal(session.CreatedAt))
}

func (s *RepositoryTestSuite) TestStoredSessionIsNotAliased() {
	session := s.createSession()
	session.Player = testutils.CreateTestSelection(arena.ClassWarrior, "Hero")
	_, err := s.repo.Update(s.ctx, &fightsession.UpdateInput{Session: session})
	s.Require().NoError(err)

	session.Player.Name = "Changed after save"

	got, err := s.repo.Get(s.ctx, &fightsession.GetInput{SessionID: testSessionID})
	s.Require().NoError(err)
	s.Equal("Hero", got.Session.Player.Name)
}

func (s *RepositoryTestSuite) TestUpdateMissing() {
	_, err := s.repo.Update(s.ctx, &fightsession.UpdateInput{Session: &fightsession.SessionData{ID: "gone"}})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Update(s.ctx, &fightsession.UpdateInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestExpiry() {
	s.createSession()

	s.advance(testTTL - time.Second)
	_, err := s.repo.Get(s.ctx, &fightsession.GetInput{SessionID: testSessionID})
	s.NoError(err)

	s.advance(time.Second)
	_, err = s.repo.Get(s.ctx, &fightsession.GetInput{SessionID: testSessionID})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Create(s.ctx, &fightsession.CreateInput{SessionID: testSessionID})
	s.NoError(err, "an expired ID can be reused")
}

func (s *RepositoryTestSuite) TestUpdateSlidesExpiry() {
	session := s.createSession()

	s.advance(testTTL / 2)
	_, err := s.repo.Update(s.ctx, &fightsession.UpdateInput{Session: session})
	s.Require().NoError(err)

	s.advance(testTTL/2 + time.Minute)
	_, err = s.repo.Get(s.ctx, &fightsession.GetInput{SessionID: testSessionID})
	s.NoError(err)
}

func (s *RepositoryTestSuite) TestDelete() {
	s.createSession()

	_, err := s.repo.Delete(s.ctx, &fightsession.DeleteInput{SessionID: testSessionID})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &fightsession.GetInput{SessionID: testSessionID})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, &fightsession.DeleteInput{SessionID: testSessionID})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestRedisKeyLayout() {
	if s.mr == nil {
		s.T().Skip("redis only")
	}

	s.createSession()

	s.True(s.mr.Exists(fightsession.GetKey(testSessionID)))
	s.Equal(testTTL, s.mr.TTL(fightsession.GetKey(testSessionID)))
}

func TestNewValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	clk := mockclock.NewMockClock(ctrl)

	_, err := fightsession.NewInMemory(nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	_, err = fightsession.NewInMemory(&fightsession.InMemoryConfig{Clock: clk, TTL: -time.Second})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	_, err = fightsession.NewRedis(&fightsession.RedisConfig{Clock: clk})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestInMemorySweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := mockclock.NewMockClock(ctrl)
	clk.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()

	repo, err := fightsession.NewInMemory(&fightsession.InMemoryConfig{Clock: clk, TTL: time.Minute})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		if _, err := repo.Create(ctx, &fightsession.CreateInput{SessionID: id}); err != nil {
			t.Fatal(err)
		}
	}

	if removed := repo.Sweep(); removed != 0 {
		t.Fatalf("expected nothing swept, got %d", removed)
	}

	now = now.Add(time.Minute)
	if removed := repo.Sweep(); removed != 2 {
		t.Fatalf("expected 2 swept, got %d", removed)
	}
}
