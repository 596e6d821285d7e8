// Package api provides the REST API server for ai-midi
package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mortomr/ai-midi/pkg/drums"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title ai-midi API
// @version 1.0
// @description API for generating drum patterns and downloading them as MIDI files
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := NewRouter()
	return r.Run(fmt.Sprintf(":%d", port))
}

// NewRouter builds the gin engine with all routes registered
func NewRouter() *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/generate", handleGenerate)
		v1.POST("/preview", handlePreview)
		v1.GET("/info", handleInfo)
		v1.GET("/rudiments", handleListRudiments)
		v1.GET("/rudiments/:name", handleRudimentDownload)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ai-midi",
	})
}

// handleInfo godoc
// @Summary List available generation options
// @Description Returns the styles, sections, kick/hihat patterns, and rudiment categories accepted by generate
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/info [get]
func handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"styles":         drums.Styles(),
		"sections":       drums.Sections(),
		"kick_patterns":  drums.KickPatterns(),
		"hihat_patterns": drums.HihatPatterns(),
		"rudiments":      drums.RudimentNames(),
		"rudiment_types": []string{"mixed", "rolls", "diddles", "flams", "drags"},
	})
}

func bindParameters(c *gin.Context) (drums.Parameters, bool) {
	// Absent fields keep the CLI defaults.
	params := drums.DefaultParameters()
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return params, false
	}
	return params, true
}

func generationStatus(err error) int {
	switch {
	case errors.Is(err, drums.ErrInvalidParameter),
		errors.Is(err, drums.ErrUnknownStyle),
		errors.Is(err, drums.ErrUnknownPattern):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleGenerate godoc
// @Summary Generate a drum pattern as a MIDI file
// @Description Generates a pattern from the supplied parameters and returns it as a .mid download
// @Tags generate
// @Accept json
// @Produce audio/midi
// @Param params body drums.Parameters true "Generation parameters"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/generate [post]
func handleGenerate(c *gin.Context) {
	params, ok := bindParameters(c)
	if !ok {
		return
	}

	pattern, err := drums.Generate(params)
	if err != nil {
		c.JSON(generationStatus(err), gin.H{"error": err.Error()})
		return
	}

	data, err := drums.NewEncoder().Encode(pattern)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("drum_pattern_%s.mid", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("X-Pattern-Description", pattern.Description)
	c.Data(http.StatusOK, "audio/midi", data)
}

// handlePreview godoc
// @Summary Generate a drum pattern as JSON
// @Description Generates a pattern and returns its structure without encoding to MIDI
// @Tags generate
// @Accept json
// @Produce json
// @Param params body drums.Parameters true "Generation parameters"
// @Success 200 {object} drums.Pattern
// @Failure 400 {object} map[string]string
// @Router /api/v1/preview [post]
func handlePreview(c *gin.Context) {
	params, ok := bindParameters(c)
	if !ok {
		return
	}

	pattern, err := drums.Generate(params)
	if err != nil {
		c.JSON(generationStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pattern)
}

// handleListRudiments godoc
// @Summary List rudiment figures
// @Description Returns the rudiment library, optionally filtered by category
// @Tags rudiments
// @Produce json
// @Param category query string false "Category filter (rolls, diddles, flams, drags)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/v1/rudiments [get]
func handleListRudiments(c *gin.Context) {
	cat := drums.RudimentCategory(c.DefaultQuery("category", string(drums.CategoryMixed)))
	switch cat {
	case drums.CategoryMixed, drums.CategoryRolls, drums.CategoryDiddles, drums.CategoryFlams, drums.CategoryDrags:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown rudiment category %q", cat)})
		return
	}
	figs := drums.ListByCategory(cat)
	out := make([]gin.H, 0, len(figs))
	for _, fig := range figs {
		out = append(out, gin.H{
			"name":     fig.Name,
			"category": fig.Category,
			"sticking": fig.Sticking,
			"strokes":  len(fig.Notes),
		})
	}
	c.JSON(http.StatusOK, gin.H{"rudiments": out})
}

// handleRudimentDownload godoc
// @Summary Download a rudiment as a MIDI file
// @Description Renders a single rudiment figure to a one-bar practice MIDI file
// @Tags rudiments
// @Produce audio/midi
// @Param name path string true "Rudiment name"
// @Param tempo query number false "Tempo in BPM (default 120)"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /api/v1/rudiments/{name} [get]
func handleRudimentDownload(c *gin.Context) {
	fig, err := drums.GetRudiment(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	tempo := 120.0
	if _, err := fmt.Sscanf(c.DefaultQuery("tempo", "120"), "%g", &tempo); err != nil || tempo <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tempo"})
		return
	}

	data, err := drums.NewEncoder().Encode(drums.RudimentPattern(fig, tempo))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.mid", fig.Name))
	c.Data(http.StatusOK, "audio/midi", data)
}
