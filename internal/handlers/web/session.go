package web

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// sessionID returns the caller's session, issuing a new one if the request has none
func (h *Handler) sessionID(c *gin.Context) (string, error) {
	if id := c.GetHeader(SessionHeader); id != "" {
		return id, nil
	}
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		return id, nil
	}
	return h.newSession(c)
}

func (h *Handler) newSession(c *gin.Context) (string, error) {
	out, err := h.arenaService.CreateSession(c.Request.Context(), &arena.CreateSessionInput{})
	if err != nil {
		return "", errors.Wrap(err, "failed to create session")
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, out.SessionID, h.cookieMaxAge, "/", "", h.secureCookie, true)
	return out.SessionID, nil
}

// withSession runs fn against the caller's session. A session that no longer
// exists is replaced once and fn runs again against the new one.
func (h *Handler) withSession(c *gin.Context, fn func(sessionID string) error) error {
	sessionID, err := h.sessionID(c)
	if err != nil {
		return err
	}

	err = fn(sessionID)
	if !errors.IsNotFound(err) {
		return err
	}

	slog.Info("Session expired, issuing a new one", "session_id", sessionID)

	sessionID, err = h.newSession(c)
	if err != nil {
		return err
	}
	return fn(sessionID)
}
