// Package httpapi wires the HTTP transport (Gin) to the contact service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, compression,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - The permissive CORS posture the companion web UI relies on
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/speakergym/funnel-tracker/docs" // registers the swagger spec
	"github.com/speakergym/funnel-tracker/internal/config"
	"github.com/speakergym/funnel-tracker/internal/http/handlers"
	"github.com/speakergym/funnel-tracker/internal/http/middleware"
	"github.com/speakergym/funnel-tracker/internal/services"
	"github.com/speakergym/funnel-tracker/internal/store"
)

// exportPath is the workbook download route. It is excluded from gzip since
// .xlsx bytes are already deflate-compressed.
const exportPath = "/api/contacts/export"

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), compression and
// rate limiting, CORS and security headers, health and metrics endpoints, and
// then mounts the public API under /api.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter (workbook uploads included)
//  6. Gzip (export download excluded)
//  7. Metrics
//  8. Rate limiter (per IP)
//  9. CORS and security headers
//
// Method matching is deliberately loose: HandleMethodNotAllowed stays off, so
// a wrong verb on a known path falls through to NoRoute and yields the same
// 404 body as an unknown path. OPTIONS requests succeed anywhere.
func RegisterRoutes(r *gin.Engine, webStore *store.WebStore, cfg config.Config) {
	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured request logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (10 MiB, covers workbook uploads)
	r.Use(limitBody(10 << 20))

	// 6) Compress JSON responses; the export download is already compressed
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{exportPath})))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 9) CORS posture (the web UI may be served from anywhere: allow all if
	// no allowlist is configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Emit the permissive headers even for requests without an Origin
		// header, exactly as the web UI expects on every response.
		r.Use(func(c *gin.Context) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:           true,
			AllowMethods:              []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:              []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:             []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
			AllowCredentials:          false, // must remain false with AllowAllOrigins
			MaxAge:                    12 * time.Hour,
			OptionsResponseStatusCode: http.StatusOK,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist.
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:              cfg.CORS.AllowedOrigins,
			AllowMethods:              []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:              []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:             []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
			AllowCredentials:          false,
			MaxAge:                    12 * time.Hour,
			OptionsResponseStatusCode: http.StatusOK,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallback: OPTIONS succeeds on any path (headers only); everything else
	// unmatched is a 404.
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			return
		}
		handlers.Fail(c, http.StatusNotFound, handlers.MsgNotFound)
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: handlers ← service ← store
	h := handlers.New(services.NewContactsService(webStore))

	// Public API
	api := r.Group("/api")
	{
		api.GET("/contacts", h.ListContacts)
		api.POST("/contacts", h.CreateContact)

		// Static segments win over :id, so export/import never parse as ids.
		api.GET("/contacts/export", h.ExportContacts)
		api.POST("/contacts/import", h.ImportContacts)

		api.GET("/contacts/:id", h.GetContact)
		api.PUT("/contacts/:id", h.UpdateContact)
		api.DELETE("/contacts/:id", h.DeleteContact)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
