// Package arena implements the arena orchestrator: selection of both sides,
// the fight lifecycle and the per-session bookkeeping around the combat engine
package arena

//go:generate mockgen -destination=mock/mock_service.go -package=arenamock github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena Service

import (
	"context"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	entities "github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/equipment"
	fightsession "github.com/KirkDiggler/rpg-arena/internal/repositories/fight_session"
)

const (
	tracerName = "github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"

	// sessionLockStripes bounds the lock table; unrelated sessions may share a stripe
	sessionLockStripes = 64

	maxNameLength = 32

	errSessionIDRequired = "session ID is required"
)

// Service defines the arena operations
type Service interface {
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)
	ListOptions(ctx context.Context, input *ListOptionsInput) (*ListOptionsOutput, error)

	// ChooseHero and ChooseEnemy validate a selection and store it for the next fight
	ChooseHero(ctx context.Context, input *ChooseInput) (*ChooseOutput, error)
	ChooseEnemy(ctx context.Context, input *ChooseInput) (*ChooseOutput, error)

	// StartFight replaces any previous fight. Both selections must have been made.
	StartFight(ctx context.Context, input *StartFightInput) (*FightOutput, error)

	// PlayerHit, PlayerUseSkill and PassTurn return FailedPrecondition until a
	// fight has been started. On an ended fight they return the stored result.
	PlayerHit(ctx context.Context, input *ActionInput) (*FightOutput, error)
	PlayerUseSkill(ctx context.Context, input *ActionInput) (*FightOutput, error)
	PassTurn(ctx context.Context, input *ActionInput) (*FightOutput, error)

	GetFight(ctx context.Context, input *GetFightInput) (*FightOutput, error)

	// EndFight clears the fight and both selections
	EndFight(ctx context.Context, input *EndFightInput) (*EndFightOutput, error)
}

// Config holds the dependencies for the arena orchestrator
type Config struct {
	SessionRepo   fightsession.Repository
	EquipmentRepo equipment.Repository
	IDGenerator   idgen.Generator
	EventBus      events.EventBus

	// Roller drives the opponent's skill chance. Defaults to dice.DefaultRoller.
	Roller dice.Roller

	// Tracer defaults to the global otel provider
	Tracer trace.Tracer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.EquipmentRepo == nil {
		vb.RequiredField("EquipmentRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

type orchestrator struct {
	sessionRepo   fightsession.Repository
	equipmentRepo equipment.Repository
	idGen         idgen.Generator
	eventBus      events.EventBus
	roller        dice.Roller
	tracer        trace.Tracer

	locks [sessionLockStripes]sync.Mutex
}

// NewOrchestrator creates a new arena orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &orchestrator{
		sessionRepo:   cfg.SessionRepo,
		equipmentRepo: cfg.EquipmentRepo,
		idGen:         cfg.IDGenerator,
		eventBus:      cfg.EventBus,
		roller:        roller,
		tracer:        tracer,
	}, nil
}

// CreateSession issues a new, empty session
func (o *orchestrator) CreateSession(ctx context.Context, _ *CreateSessionInput) (_ *CreateSessionOutput, err error) {
	ctx, span := o.tracer.Start(ctx, "arena.CreateSession")
	defer func() { endSpan(span, err) }()

	sessionID := o.idGen.Generate()
	span.SetAttributes(attribute.String("arena.session_id", sessionID))

	if _, err := o.sessionRepo.Create(ctx, &fightsession.CreateInput{SessionID: sessionID}); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	slog.Debug("Arena session created", "session_id", sessionID)

	return &CreateSessionOutput{SessionID: sessionID}, nil
}

// ListOptions returns the classes and equipment offered on the selection pages
func (o *orchestrator) ListOptions(ctx context.Context, _ *ListOptionsInput) (_ *ListOptionsOutput, err error) {
	ctx, span := o.tracer.Start(ctx, "arena.ListOptions")
	defer func() { endSpan(span, err) }()

	weapons, err := o.equipmentRepo.ListWeapons(ctx, &equipment.ListWeaponsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list weapons")
	}
	armors, err := o.equipmentRepo.ListArmors(ctx, &equipment.ListArmorsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list armors")
	}

	return &ListOptionsOutput{
		Classes: entities.Classes(),
		Weapons: weapons.Weapons,
		Armors:  armors.Armors,
	}, nil
}

// ChooseHero validates the selection and stores it as the player side
func (o *orchestrator) ChooseHero(ctx context.Context, input *ChooseInput) (*ChooseOutput, error) {
	return o.choose(ctx, "arena.ChooseHero", entities.SidePlayer, input)
}

// ChooseEnemy validates the selection and stores it as the opponent side
func (o *orchestrator) ChooseEnemy(ctx context.Context, input *ChooseInput) (*ChooseOutput, error) {
	return o.choose(ctx, "arena.ChooseEnemy", entities.SideOpponent, input)
}

func (o *orchestrator) choose(ctx context.Context, spanName string, side entities.Side, input *ChooseInput) (_ *ChooseOutput, err error) {
	ctx, span := o.tracer.Start(ctx, spanName)
	defer func() { endSpan(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}
	span.SetAttributes(
		attribute.String("arena.session_id", input.SessionID),
		attribute.String("arena.side", string(side)),
		attribute.String("arena.class", input.Selection.ClassName),
	)

	selection := input.Selection
	selection.Name = strings.TrimSpace(selection.Name)
	if err := o.validateSelection(ctx, &selection); err != nil {
		return nil, err
	}

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if side == entities.SidePlayer {
		session.Player = &selection
	} else {
		session.Opponent = &selection
	}

	if _, err := o.sessionRepo.Update(ctx, &fightsession.UpdateInput{Session: session}); err != nil {
		return nil, errors.Wrapf(err, "failed to save %s selection", side)
	}

	slog.Info("Selection stored",
		"session_id", input.SessionID,
		"side", side,
		"class", selection.ClassName,
		"weapon", selection.WeaponName,
		"armor", selection.ArmorName,
	)

	return &ChooseOutput{
		SessionID: input.SessionID,
		Side:      side,
		Selection: selection,
	}, nil
}

// StartFight builds both combatants from the stored selections and starts a new fight
func (o *orchestrator) StartFight(ctx context.Context, input *StartFightInput) (_ *FightOutput, err error) {
	ctx, span := o.tracer.Start(ctx, "arena.StartFight")
	defer func() { endSpan(span, err) }()

	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}
	span.SetAttributes(attribute.String("arena.session_id", input.SessionID))

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	vb := errors.NewValidationBuilder()
	if session.Player == nil {
		vb.RequiredField("player")
	}
	if session.Opponent == nil {
		vb.RequiredField("opponent")
	}
	if err := vb.Build(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeFailedPrecondition, "both sides must be chosen before a fight")
	}

	player, err := o.newCombatant(ctx, session.ID, session.Player, combat.PlayerControlled)
	if err != nil {
		return nil, err
	}
	opponent, err := o.newCombatant(ctx, session.ID, session.Opponent, combat.AIControlled)
	if err != nil {
		return nil, err
	}

	fight := combat.NewFight(o.roller)
	fight.Start(player, opponent)

	session.Fight = fight.State()
	if _, err := o.sessionRepo.Update(ctx, &fightsession.UpdateInput{Session: session}); err != nil {
		return nil, errors.Wrap(err, "failed to save fight")
	}

	slog.Info("Fight started",
		"session_id", session.ID,
		"player_class", player.Class().Name,
		"opponent_class", opponent.Class().Name,
	)

	event := events.NewGameEvent(EventFightStarted, player, opponent)
	event.Context().Set(EventKeySessionID, session.ID)
	o.publish(ctx, event)

	return buildFightOutput(session, fight, combat.Turn{Lines: []string{MsgFightStarted}}), nil
}

// PlayerHit resolves the player's weapon swing and the opponent's reply
func (o *orchestrator) PlayerHit(ctx context.Context, input *ActionInput) (*FightOutput, error) {
	return o.act(ctx, "arena.PlayerHit", input, (*combat.Fight).PlayerHit)
}

// PlayerUseSkill spends the player's skill and resolves the opponent's reply
func (o *orchestrator) PlayerUseSkill(ctx context.Context, input *ActionInput) (*FightOutput, error) {
	return o.act(ctx, "arena.PlayerUseSkill", input, (*combat.Fight).PlayerUseSkill)
}

// PassTurn lets the opponent act without a player action
func (o *orchestrator) PassTurn(ctx context.Context, input *ActionInput) (*FightOutput, error) {
	return o.act(ctx, "arena.PassTurn", input, (*combat.Fight).AdvanceTurn)
}

// act runs one load-mutate-save cycle under the session lock
func (o *orchestrator) act(ctx context.Context, spanName string, input *ActionInput, action func(*combat.Fight) combat.Turn) (_ *FightOutput, err error) {
	ctx, span := o.tracer.Start(ctx, spanName)
	defer func() { endSpan(span, err) }()

	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}
	span.SetAttributes(attribute.String("arena.session_id", input.SessionID))

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	fight, err := o.restoreFight(ctx, session)
	if err != nil {
		return nil, err
	}
	if fight.Status() == combat.StatusIdle {
		return nil, errors.FailedPrecondition("no fight has been started").WithMeta("session_id", session.ID)
	}

	wasActive := fight.Status() == combat.StatusActive
	turn := action(fight)

	if wasActive {
		session.Fight = fight.State()
		if _, err := o.sessionRepo.Update(ctx, &fightsession.UpdateInput{Session: session}); err != nil {
			return nil, errors.Wrap(err, "failed to save fight")
		}
		o.publishTurn(ctx, session.ID, fight, turn)
	}

	span.SetAttributes(
		attribute.String("arena.status", string(fight.Status())),
		attribute.Float64("arena.player_health", fight.Player().Health()),
		attribute.Float64("arena.opponent_health", fight.Opponent().Health()),
	)

	slog.Debug("Fight action resolved",
		"session_id", session.ID,
		"action", spanName,
		"status", fight.Status(),
		"player_health", fight.Player().Health(),
		"opponent_health", fight.Opponent().Health(),
	)

	return buildFightOutput(session, fight, turn), nil
}

// GetFight returns the session's current fight without changing it
func (o *orchestrator) GetFight(ctx context.Context, input *GetFightInput) (_ *FightOutput, err error) {
	ctx, span := o.tracer.Start(ctx, "arena.GetFight")
	defer func() { endSpan(span, err) }()

	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}
	span.SetAttributes(attribute.String("arena.session_id", input.SessionID))

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	fight, err := o.restoreFight(ctx, session)
	if err != nil {
		return nil, err
	}

	var turn combat.Turn
	if fight.Status() == combat.StatusEnded {
		turn.Lines = []string{fight.Result()}
	}

	return buildFightOutput(session, fight, turn), nil
}

// EndFight forgets the fight and both selections
func (o *orchestrator) EndFight(ctx context.Context, input *EndFightInput) (_ *EndFightOutput, err error) {
	ctx, span := o.tracer.Start(ctx, "arena.EndFight")
	defer func() { endSpan(span, err) }()

	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDRequired)
	}
	span.SetAttributes(attribute.String("arena.session_id", input.SessionID))

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	abandoned := session.Fight.Status == combat.StatusActive

	session.Player = nil
	session.Opponent = nil
	session.Fight = combat.FightState{}
	if _, err := o.sessionRepo.Update(ctx, &fightsession.UpdateInput{Session: session}); err != nil {
		return nil, errors.Wrap(err, "failed to clear fight")
	}

	slog.Info("Fight cleared", "session_id", session.ID, "abandoned", abandoned)

	return &EndFightOutput{}, nil
}

func (o *orchestrator) loadSession(ctx context.Context, sessionID string) (*fightsession.SessionData, error) {
	out, err := o.sessionRepo.Get(ctx, &fightsession.GetInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load session %s", sessionID)
	}
	return out.Session, nil
}

// validateSelection reports unknown names as InvalidArgument since they come from user input
func (o *orchestrator) validateSelection(ctx context.Context, selection *entities.Selection) error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", selection.Name, vb)
	errors.ValidateMaxLength("name", selection.Name, maxNameLength, vb)

	if selection.ClassName == "" {
		vb.RequiredField("unit_class")
	} else if _, err := entities.LookupClass(selection.ClassName); err != nil {
		vb.Fieldf("unit_class", "unknown class %q", selection.ClassName)
	}

	if selection.WeaponName == "" {
		vb.RequiredField("weapon")
	} else if _, err := o.equipmentRepo.GetWeapon(ctx, &equipment.GetWeaponInput{Name: selection.WeaponName}); err != nil {
		if !errors.IsNotFound(err) {
			return errors.Wrap(err, "failed to look up weapon")
		}
		vb.Fieldf("weapon", "unknown weapon %q", selection.WeaponName)
	}

	if selection.ArmorName == "" {
		vb.RequiredField("armor")
	} else if _, err := o.equipmentRepo.GetArmor(ctx, &equipment.GetArmorInput{Name: selection.ArmorName}); err != nil {
		if !errors.IsNotFound(err) {
			return errors.Wrap(err, "failed to look up armor")
		}
		vb.Fieldf("armor", "unknown armor %q", selection.ArmorName)
	}

	return vb.Build()
}

func (o *orchestrator) combatantConfig(ctx context.Context, id, name, className, weaponName, armorName string, behavior combat.Behavior) (*combat.Config, error) {
	class, err := entities.LookupClass(className)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "stored class no longer exists")
	}
	weapon, err := o.equipmentRepo.GetWeapon(ctx, &equipment.GetWeaponInput{Name: weaponName})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "stored weapon no longer exists")
	}
	armor, err := o.equipmentRepo.GetArmor(ctx, &equipment.GetArmorInput{Name: armorName})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "stored armor no longer exists")
	}

	return &combat.Config{
		ID:       id,
		Name:     name,
		Class:    class,
		Weapon:   weapon.Weapon,
		Armor:    armor.Armor,
		Behavior: behavior,
	}, nil
}

func (o *orchestrator) newCombatant(ctx context.Context, sessionID string, selection *entities.Selection, behavior combat.Behavior) (*combat.Combatant, error) {
	cfg, err := o.combatantConfig(ctx, combatantID(sessionID, behavior), selection.Name,
		selection.ClassName, selection.WeaponName, selection.ArmorName, behavior)
	if err != nil {
		return nil, err
	}
	return combat.NewCombatant(cfg), nil
}

func (o *orchestrator) restoreCombatant(ctx context.Context, state *combat.CombatantState) (*combat.Combatant, error) {
	cfg, err := o.combatantConfig(ctx, state.ID, state.Name,
		state.ClassName, state.WeaponName, state.ArmorName, state.Behavior)
	if err != nil {
		return nil, err
	}
	return combat.RestoreCombatant(cfg, *state), nil
}

func (o *orchestrator) restoreFight(ctx context.Context, session *fightsession.SessionData) (*combat.Fight, error) {
	state := session.Fight
	if state.Player == nil || state.Opponent == nil {
		return combat.NewFight(o.roller), nil
	}

	player, err := o.restoreCombatant(ctx, state.Player)
	if err != nil {
		return nil, err
	}
	opponent, err := o.restoreCombatant(ctx, state.Opponent)
	if err != nil {
		return nil, err
	}

	return combat.RestoreFight(o.roller, state, player, opponent), nil
}

// publishTurn emits one event per resolved action, then the turn or end event
func (o *orchestrator) publishTurn(ctx context.Context, sessionID string, fight *combat.Fight, turn combat.Turn) {
	for _, action := range turn.Actions {
		eventType := EventAttackResolved
		if action.Kind == combat.ActionSkill {
			eventType = EventSkillUsed
		}

		event := events.NewGameEvent(eventType, action.Actor, action.Target)
		event.Context().Set(EventKeySessionID, sessionID)
		event.Context().Set(EventKeyDamage, action.Damage)
		event.Context().Set(EventKeyLanded, action.Landed)
		event.Context().Set(EventKeyApplied, action.Applied)
		o.publish(ctx, event)
	}

	eventType := EventTurnAdvanced
	if turn.Ended {
		eventType = EventFightEnded
	}

	event := events.NewGameEvent(eventType, fight.Player(), fight.Opponent())
	event.Context().Set(EventKeySessionID, sessionID)
	event.Context().Set(EventKeyLines, turn.Lines)
	if turn.Ended {
		event.Context().Set(EventKeyOutcome, string(fight.Outcome()))
	}
	o.publish(ctx, event)
}

// publish never fails the action; a broken subscriber only gets logged
func (o *orchestrator) publish(ctx context.Context, event events.Event) {
	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish arena event",
			"event_type", event.Type(),
			"error", err,
		)
	}
}

func (o *orchestrator) lock(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	mu := &o.locks[h.Sum32()%sessionLockStripes]
	mu.Lock()
	return mu.Unlock
}

func combatantID(sessionID string, behavior combat.Behavior) string {
	return sessionID + ":" + string(behavior)
}

func buildFightOutput(session *fightsession.SessionData, fight *combat.Fight, turn combat.Turn) *FightOutput {
	out := &FightOutput{
		SessionID:         session.ID,
		Result:            turn.Message(),
		Lines:             turn.Lines,
		Status:            fight.Status(),
		Outcome:           fight.Outcome(),
		PlayerSelection:   session.Player,
		OpponentSelection: session.Opponent,
	}

	if p := fight.Player(); p != nil {
		snap := p.Snapshot()
		out.Player = &snap
	}
	if op := fight.Opponent(); op != nil {
		snap := op.Snapshot()
		out.Opponent = &snap
	}

	return out
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, errors.GetMessage(err))
	}
	span.End()
}
