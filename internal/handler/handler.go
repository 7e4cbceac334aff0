package handler

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/Rasika1975/socialapp/internal/dto"
	"github.com/Rasika1975/socialapp/internal/imagestore"
	"github.com/Rasika1975/socialapp/internal/model"
	"github.com/Rasika1975/socialapp/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	// ClientOrigin is the CORS origin; "*" allows any.
	ClientOrigin string
	// PublicURL, when set, is the serving origin used for image references
	// instead of the request's host.
	PublicURL string
	// UploadsDir is served at /uploads when non-empty.
	UploadsDir string
	// TrustedProxies are the IPs or CIDRs allowed to set X-Forwarded-*.
	TrustedProxies []string
}

type Handler struct {
	logger    *zap.Logger
	services  *service.Service
	latency   *LatencyRecorder
	options   Options
	publicURL *url.URL
	proxies   []*net.IPNet
}

func New(logger *zap.Logger, services *service.Service, options Options) *Handler {
	h := &Handler{
		logger:   logger,
		services: services,
		latency:  NewLatencyRecorder(),
		options:  options,
	}

	if options.PublicURL != "" {
		if u, err := url.Parse(options.PublicURL); err == nil && u.Host != "" {
			h.publicURL = &url.URL{Scheme: u.Scheme, Host: u.Host}
		} else {
			logger.Sugar().Warnf("ignoring invalid public url %q", options.PublicURL)
		}
	}

	for _, entry := range options.TrustedProxies {
		ipNet, err := parseProxy(entry)
		if err != nil {
			logger.Sugar().Warnf("ignoring invalid trusted proxy %q: %s", entry, err.Error())
			continue
		}
		h.proxies = append(h.proxies, ipNet)
	}

	return h
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(h.trustedProxies()); err != nil {
		h.logger.Sugar().Errorf("failed to set trusted proxies: %s", err.Error())
	}

	// Recovery runs innermost so panicking requests are still logged and timed.
	r.Use(h.requestLoggerMiddleware, h.latency.Middleware, h.recoveryMiddleware)
	r.Use(cors.New(h.corsConfig()))

	if h.options.UploadsDir != "" {
		r.Static(imagestore.UploadsPath, h.options.UploadsDir)
	}

	r.GET("/health", h.health)
	r.GET("/stats/latency", h.latencyStats)

	// Older clients call the API under /api.
	h.mountAPI(&r.RouterGroup)
	h.mountAPI(r.Group("/api"))

	return r
}

func (h *Handler) mountAPI(g *gin.RouterGroup) {
	auth := g.Group("/auth")
	{
		auth.POST("/signup", h.authSignUp)
		auth.POST("/login", h.authLogin)
	}

	posts := g.Group("/posts")
	{
		posts.GET("", h.postsList)
		posts.POST("", h.authMiddleware, h.postsCreate)
		posts.PUT("/:id/like", h.authMiddleware, h.postsLike)
		posts.PUT("/:id/comment", h.authMiddleware, h.postsComment)
		posts.DELETE("/:id", h.authMiddleware, h.postsDelete)
	}
}

func (h *Handler) corsConfig() cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{requestIDHeader},
	}

	if h.options.ClientOrigin == "" || h.options.ClientOrigin == "*" {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = strings.Split(h.options.ClientOrigin, ",")
	}

	return config
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

func (h *Handler) latencyStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.latency.Snapshot())
}

func (h *Handler) getUser(c *gin.Context) model.Identity {
	userReq, _ := c.Get("user")

	user, _ := userReq.(model.Identity)
	return user
}

// servingOrigin is the scheme and host clients use to reach this server.
func (h *Handler) servingOrigin(c *gin.Context) *url.URL {
	if h.publicURL != nil {
		return h.publicURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	host := c.Request.Host

	if h.fromTrustedProxy(c) {
		if proto := firstHeaderValue(c.GetHeader("X-Forwarded-Proto")); proto == "http" || proto == "https" {
			scheme = proto
		}
		if forwarded := firstHeaderValue(c.GetHeader("X-Forwarded-Host")); forwarded != "" {
			host = forwarded
		}
	}
	if host == "" {
		return nil
	}

	return &url.URL{Scheme: scheme, Host: host}
}

func firstHeaderValue(value string) string {
	first, _, _ := strings.Cut(value, ",")
	return strings.ToLower(strings.TrimSpace(first))
}
