package web

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	entities "github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
	"github.com/KirkDiggler/rpg-arena/internal/render/card"
)

// Page titles
const (
	TitleIndex       = "Arena"
	TitleChooseHero  = "Choose your hero"
	TitleChooseEnemy = "Choose your enemy"
	TitleFight       = "Fight"
	TitleError       = "Something went wrong"
)

type indexView struct {
	Title string
}

type selectionForm struct {
	UnitClass string `form:"unit_class"`
	Weapon    string `form:"weapon"`
	Armor     string `form:"armor"`
	Name      string `form:"name"`
}

func (f selectionForm) selection() entities.Selection {
	return entities.Selection{
		ClassName:  f.UnitClass,
		WeaponName: f.Weapon,
		ArmorName:  f.Armor,
		Name:       f.Name,
	}
}

type chooseView struct {
	Title   string
	Action  string
	Error   string
	Form    selectionForm
	Classes []entities.ClassDefinition
	Weapons []entities.Weapon
	Armors  []entities.Armor
}

type fightView struct {
	Title    string
	Player   *combat.Snapshot
	Opponent *combat.Snapshot
	Lines    []string
	Ended    bool
}

type errorView struct {
	Title string
	Error string
}

// Index renders the landing page
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", indexView{Title: TitleIndex})
}

// ChooseHeroPage renders the hero selection form
func (h *Handler) ChooseHeroPage(c *gin.Context) {
	h.renderChoose(c, http.StatusOK, TitleChooseHero, "/choose-hero", selectionForm{}, "")
}

// ChooseEnemyPage renders the enemy selection form
func (h *Handler) ChooseEnemyPage(c *gin.Context) {
	h.renderChoose(c, http.StatusOK, TitleChooseEnemy, "/choose-enemy", selectionForm{}, "")
}

// ChooseHero stores the player's selection and moves on to the enemy
func (h *Handler) ChooseHero(c *gin.Context) {
	h.choose(c, h.arenaService.ChooseHero, TitleChooseHero, "/choose-hero", "/choose-enemy")
}

// ChooseEnemy stores the opponent's selection and starts the fight page
func (h *Handler) ChooseEnemy(c *gin.Context) {
	h.choose(c, h.arenaService.ChooseEnemy, TitleChooseEnemy, "/choose-enemy", "/fight")
}

type chooseFunc func(context.Context, *arena.ChooseInput) (*arena.ChooseOutput, error)

func (h *Handler) choose(c *gin.Context, fn chooseFunc, title, action, next string) {
	var form selectionForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderChoose(c, http.StatusBadRequest, title, action, form, "Malformed form.")
		return
	}

	err := h.withSession(c, func(sessionID string) error {
		_, err := fn(c.Request.Context(), &arena.ChooseInput{
			SessionID: sessionID,
			Selection: form.selection(),
		})
		return err
	})
	if errors.IsInvalidArgument(err) {
		h.renderChoose(c, http.StatusBadRequest, title, action, form, errors.GetMessage(err))
		return
	}
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, next)
}

func (h *Handler) renderChoose(c *gin.Context, status int, title, action string, form selectionForm, message string) {
	options, err := h.arenaService.ListOptions(c.Request.Context(), &arena.ListOptionsInput{})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(status, "choose.html", chooseView{
		Title:   title,
		Action:  action,
		Error:   message,
		Form:    form,
		Classes: options.Classes,
		Weapons: options.Weapons,
		Armors:  options.Armors,
	})
}

// Fight starts a new fight once both sides are chosen
func (h *Handler) Fight(c *gin.Context) {
	var out *arena.FightOutput
	err := h.withSession(c, func(sessionID string) error {
		var err error
		out, err = h.arenaService.StartFight(c.Request.Context(), &arena.StartFightInput{SessionID: sessionID})
		return err
	})
	if errors.IsFailedPrecondition(err) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.renderFight(c, out)
}

type actionFunc func(context.Context, *arena.ActionInput) (*arena.FightOutput, error)

// action runs fn while a fight exists. An ended fight renders its result and
// a session without a fight goes back to the index.
func (h *Handler) action(fn actionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var out *arena.FightOutput
		err := h.withSession(c, func(sessionID string) error {
			var err error
			out, err = fn(c.Request.Context(), &arena.ActionInput{SessionID: sessionID})
			return err
		})
		if errors.IsFailedPrecondition(err) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		if err != nil {
			h.renderError(c, err)
			return
		}

		h.renderFight(c, out)
	}
}

// EndFight abandons the fight and returns to the index
func (h *Handler) EndFight(c *gin.Context) {
	err := h.withSession(c, func(sessionID string) error {
		_, err := h.arenaService.EndFight(c.Request.Context(), &arena.EndFightInput{SessionID: sessionID})
		return err
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Card renders the fight's status card as a PNG
func (h *Handler) Card(c *gin.Context) {
	scale := 1.0
	if raw := c.Query("scale"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(parsed) {
			c.String(http.StatusBadRequest, "scale must be a number")
			return
		}
		scale = parsed
	}

	var out *arena.FightOutput
	err := h.withSession(c, func(sessionID string) error {
		var err error
		out, err = h.arenaService.GetFight(c.Request.Context(), &arena.GetFightInput{SessionID: sessionID})
		return err
	})
	if err != nil {
		c.String(errors.GetCode(err).HTTPStatus(), errors.GetMessage(err))
		return
	}
	if out.Player == nil || out.Opponent == nil {
		c.String(http.StatusNotFound, "no fight")
		return
	}

	img := card.Scale(card.Render(*out.Player, *out.Opponent, out.Result), scale)

	var buf bytes.Buffer
	if err := card.Encode(&buf, img); err != nil {
		slog.Error("Failed to encode status card", "error", err)
		c.String(http.StatusInternalServerError, "failed to encode image")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) renderFight(c *gin.Context, out *arena.FightOutput) {
	c.HTML(http.StatusOK, "fight.html", fightView{
		Title:    TitleFight,
		Player:   out.Player,
		Opponent: out.Opponent,
		Lines:    out.Lines,
		Ended:    out.Status == combat.StatusEnded,
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	slog.Error("Request failed",
		"path", c.Request.URL.Path,
		"code", code,
		"error", err,
	)

	c.HTML(code.HTTPStatus(), "error.html", errorView{
		Title: TitleError,
		Error: errors.GetMessage(err),
	})
}
