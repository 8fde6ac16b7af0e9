package web

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	entities "github.com/KirkDiggler/rpg-arena/internal/entities/arena"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// SelectionRequest is the body of the hero and enemy endpoints
type SelectionRequest struct {
	UnitClass string `json:"unit_class"`
	Weapon    string `json:"weapon"`
	Armor     string `json:"armor"`
	Name      string `json:"name"`
}

// SessionResponse carries a session ID
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// OptionsResponse lists everything a selection can use
type OptionsResponse struct {
	Classes []entities.ClassDefinition `json:"classes"`
	Weapons []entities.Weapon          `json:"weapons"`
	Armors  []entities.Armor           `json:"armors"`
}

// SelectionResponse echoes a stored selection
type SelectionResponse struct {
	SessionID string             `json:"session_id"`
	Side      entities.Side      `json:"side"`
	Selection entities.Selection `json:"selection"`
}

// FightResponse is a fight's state after an operation
type FightResponse struct {
	SessionID string           `json:"session_id"`
	Status    combat.Status    `json:"status"`
	Outcome   combat.Outcome   `json:"outcome,omitempty"`
	Result    string           `json:"result"`
	Lines     []string         `json:"lines"`
	Player    *combat.Snapshot `json:"player,omitempty"`
	Opponent  *combat.Snapshot `json:"opponent,omitempty"`
}

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Code    errors.Code         `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func toFightResponse(out *arena.FightOutput) FightResponse {
	lines := out.Lines
	if lines == nil {
		lines = []string{}
	}
	return FightResponse{
		SessionID: out.SessionID,
		Status:    out.Status,
		Outcome:   out.Outcome,
		Result:    out.Result,
		Lines:     lines,
		Player:    out.Player,
		Opponent:  out.Opponent,
	}
}

// APICreateSession issues a session and sets the session cookie
func (h *Handler) APICreateSession(c *gin.Context) {
	sessionID, err := h.newSession(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SessionResponse{SessionID: sessionID})
}

// APIListOptions returns the classes and the equipment catalog
func (h *Handler) APIListOptions(c *gin.Context) {
	out, err := h.arenaService.ListOptions(c.Request.Context(), &arena.ListOptionsInput{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, OptionsResponse{
		Classes: out.Classes,
		Weapons: out.Weapons,
		Armors:  out.Armors,
	})
}

// APIChoose stores a selection through fn
func (h *Handler) APIChoose(fn chooseFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := apiSessionID(c)
		if err != nil {
			writeError(c, err)
			return
		}

		var req SelectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request body"))
			return
		}

		out, err := fn(c.Request.Context(), &arena.ChooseInput{
			SessionID: sessionID,
			Selection: entities.Selection{
				ClassName:  req.UnitClass,
				WeaponName: req.Weapon,
				ArmorName:  req.Armor,
				Name:       req.Name,
			},
		})
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, SelectionResponse{
			SessionID: out.SessionID,
			Side:      out.Side,
			Selection: out.Selection,
		})
	}
}

// APIStartFight starts a fight from the stored selections
func (h *Handler) APIStartFight(c *gin.Context) {
	sessionID, err := apiSessionID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := h.arenaService.StartFight(c.Request.Context(), &arena.StartFightInput{SessionID: sessionID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFightResponse(out))
}

// APIAction runs one fight action through fn
func (h *Handler) APIAction(fn actionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := apiSessionID(c)
		if err != nil {
			writeError(c, err)
			return
		}

		out, err := fn(c.Request.Context(), &arena.ActionInput{SessionID: sessionID})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toFightResponse(out))
	}
}

// APIGetFight returns the current fight without changing it
func (h *Handler) APIGetFight(c *gin.Context) {
	sessionID, err := apiSessionID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := h.arenaService.GetFight(c.Request.Context(), &arena.GetFightInput{SessionID: sessionID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFightResponse(out))
}

// APIEndFight clears the fight and both selections
func (h *Handler) APIEndFight(c *gin.Context) {
	sessionID, err := apiSessionID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if _, err := h.arenaService.EndFight(c.Request.Context(), &arena.EndFightInput{SessionID: sessionID}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// apiSessionID never issues a session; API clients create one explicitly
func apiSessionID(c *gin.Context) (string, error) {
	if id := c.GetHeader(SessionHeader); id != "" {
		return id, nil
	}
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		return id, nil
	}
	return "", errors.InvalidArgumentf("session is required; send the %s header or cookie", SessionHeader)
}

func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	if code.HTTPStatus() >= http.StatusInternalServerError {
		slog.Error("API request failed", "path", c.Request.URL.Path, "code", code, "error", err)
	} else {
		slog.Debug("API request rejected", "path", c.Request.URL.Path, "code", code, "error", err)
	}

	resp := ErrorResponse{
		Code:    code,
		Message: errors.GetMessage(err),
	}
	if fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string); ok {
		resp.Fields = fields
	}

	c.AbortWithStatusJSON(code.HTTPStatus(), resp)
}
