package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates an HTTP server exposing the latest run's outputs.
// The surface is read-only; there is no authentication.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/report", handler.GetReport)
	r.GET("/curated/summary", handler.GetCuratedSummary)
	r.GET("/calendars/:name", handler.GetCalendar)

	r.GET("/health", handler.HealthCheck)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Event Comb",
			"version":     handler.Version,
			"description": "Calendar aggregator republishing normalized, deduplicated event streams",
			"endpoints": map[string]string{
				"report":   "/report",
				"curated":  "/curated/summary",
				"calendar": "/calendars/<name>",
				"health":   "/health",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
