// Package web serves the arena's browser pages and its JSON API
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// SessionCookie names the cookie carrying the arena session ID
const SessionCookie = "arena_session"

// SessionHeader lets API clients pass the session without cookies
const SessionHeader = "X-Arena-Session"

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	ArenaService arena.Service

	// CookieMaxAge is the lifetime of the session cookie; zero means a browser session cookie
	CookieMaxAge time.Duration
	SecureCookie bool
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.ArenaService == nil {
		vb.RequiredField("ArenaService")
	}
	if c.CookieMaxAge < 0 {
		vb.Field("CookieMaxAge", "must not be negative")
	}
	return vb.Build()
}

// Handler serves the arena over HTTP
type Handler struct {
	arenaService arena.Service
	cookieMaxAge int
	secureCookie bool
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid handler config")
	}

	return &Handler{
		arenaService: cfg.ArenaService,
		cookieMaxAge: int(cfg.CookieMaxAge / time.Second),
		secureCookie: cfg.SecureCookie,
	}, nil
}

// NewRouter builds a gin engine with the handler's routes and middleware
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), AccessLog())
	r.SetHTMLTemplate(templates)
	h.Register(r)
	return r
}

// Register adds every route to r
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", h.Index)
	r.GET("/choose-hero", h.ChooseHeroPage)
	r.POST("/choose-hero", h.ChooseHero)
	r.GET("/choose-enemy", h.ChooseEnemyPage)
	r.POST("/choose-enemy", h.ChooseEnemy)

	fight := r.Group("/fight")
	{
		fight.GET("", h.Fight)
		fight.GET("/hit", h.action(h.arenaService.PlayerHit))
		fight.GET("/use-skill", h.action(h.arenaService.PlayerUseSkill))
		fight.GET("/pass-turn", h.action(h.arenaService.PassTurn))
		fight.GET("/end-fight", h.EndFight)
		fight.GET("/card.png", h.Card)
	}

	api := r.Group("/api/v1")
	{
		api.POST("/sessions", h.APICreateSession)
		api.GET("/options", h.APIListOptions)
		api.POST("/hero", h.APIChoose(h.arenaService.ChooseHero))
		api.POST("/enemy", h.APIChoose(h.arenaService.ChooseEnemy))
		api.POST("/fight", h.APIStartFight)
		api.GET("/fight", h.APIGetFight)
		api.DELETE("/fight", h.APIEndFight)
		api.POST("/fight/hit", h.APIAction(h.arenaService.PlayerHit))
		api.POST("/fight/skill", h.APIAction(h.arenaService.PlayerUseSkill))
		api.POST("/fight/pass", h.APIAction(h.arenaService.PassTurn))
	}
}
