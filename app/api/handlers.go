package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// Handler serves the artifacts of the most recent run straight from the
// output directory, so a completed run is visible without restarting.
type Handler struct {
	OutputDir string
	Version   string
}

func NewHandler(outputDir, version string) *Handler {
	return &Handler{
		OutputDir: outputDir,
		Version:   version,
	}
}

func (h *Handler) GetReport(c *gin.Context) {
	h.serveJSONFile(c, "report.json", "no run report available yet")
}

func (h *Handler) GetCuratedSummary(c *gin.Context) {
	h.serveJSONFile(c, "curated_summary.json", "no curated summary available yet")
}

// GetCalendar serves a generated .ics file by base name, e.g.
// "combined", "source_city_arts_council" or "curated_family".
func (h *Handler) GetCalendar(c *gin.Context) {
	name := c.Param("name")
	name = strings.TrimSuffix(name, ".ics")

	// Calendar names never contain path separators; reject traversal.
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calendar name"})
		return
	}

	path := filepath.Join(h.OutputDir, name+".ics")
	data, err := os.ReadFile(path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "calendar not found"})
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.String(http.StatusOK, string(data))
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.Version,
	})
}

func (h *Handler) serveJSONFile(c *gin.Context, name, missingMsg string) {
	data, err := os.ReadFile(filepath.Join(h.OutputDir, name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": missingMsg})
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}
