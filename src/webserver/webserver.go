package webserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/beer-league/faqbot/src/bot"
	"github.com/beer-league/faqbot/src/rulebook"
)

// Config holds the ops API inputs.
type Config struct {
	// Token, when set, is required as a Bearer token on mutating routes.
	Token string
}

// New builds the ops HTTP surface: health, recent questions, manual refresh.
func New(cfg Config, cache *rulebook.Cache, recent *bot.RecentLog) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	g.Use(cors.Default())

	h := handlers{cfg: cfg, cache: cache, recent: recent}

	v1 := g.Group("/v1")
	v1.GET("/health", h.health)
	v1.GET("/recent", h.recentQuestions)
	v1.POST("/refresh", h.requireToken, h.refresh)

	return g
}

type handlers struct {
	cfg    Config
	cache  *rulebook.Cache
	recent *bot.RecentLog
}

func (h handlers) health(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if doc, ok := h.cache.Current(); ok {
		resp["document"] = gin.H{
			"source":    doc.Source,
			"fetchedAt": doc.FetchedAt.Format(time.RFC3339),
			"length":    len(doc.Text),
		}
	} else {
		resp["document"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

func (h handlers) recentQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.recent.Snapshot()})
}

func (h handlers) refresh(c *gin.Context) {
	if err := h.cache.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"err": err.Error()})
		return
	}

	doc, _ := h.cache.Current()
	c.JSON(http.StatusOK, gin.H{
		"source":    doc.Source,
		"fetchedAt": doc.FetchedAt.Format(time.RFC3339),
		"length":    len(doc.Text),
	})
}

func (h handlers) requireToken(c *gin.Context) {
	if h.cfg.Token == "" {
		return
	}
	if c.GetHeader("Authorization") != "Bearer "+h.cfg.Token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"err": "unauthorized"})
	}
}
