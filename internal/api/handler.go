// Package api serves the planner and tracker over a local JSON API.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/export"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/service"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

var errNotFound = errors.New("not found")

// Handler owns the store for the lifetime of the server. Log mutations are
// load-modify-save sequences, so they run under mu.
type Handler struct {
	kv store.Store
	mu sync.Mutex
}

func NewHandler(kv store.Store) *Handler {
	return &Handler{kv: kv}
}

type foodRequest struct {
	Name    string          `json:"name" binding:"required"`
	Grams   float64         `json:"grams" binding:"required"`
	Per100g model.Nutrients `json:"per100g"`
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

type logResponse struct {
	Log    model.DailyLog        `json:"log"`
	Status service.TrackerStatus `json:"status"`
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile", h.GetProfile)
	router.PUT("/profile", h.PutProfile)
	router.GET("/assessment", h.GetAssessment)
	router.GET("/tracker-profile", h.GetTrackerProfile)
	router.PUT("/tracker-profile", h.PutTrackerProfile)

	logs := router.Group("/log")
	{
		logs.GET("", h.ListDates)
		logs.GET("/:date", h.GetLog)
		logs.GET("/:date/export", h.ExportLog)
		logs.POST("/:date/foods", h.AddFood)
		logs.DELETE("/:date/foods/:id", h.RemoveFood)
		logs.POST("/:date/reset", h.ResetDay)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	p, err := service.LoadProfile(c.Request.Context(), h.kv)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) PutProfile(c *gin.Context) {
	var p model.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := service.ValidateProfile(p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := service.SaveProfile(c.Request.Context(), h.kv, p)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) GetAssessment(c *gin.Context) {
	p, err := service.LoadProfile(c.Request.Context(), h.kv)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.Assess(p))
}

func (h *Handler) GetTrackerProfile(c *gin.Context) {
	tp, err := service.LoadTrackerProfile(c.Request.Context(), h.kv)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tp)
}

func (h *Handler) PutTrackerProfile(c *gin.Context) {
	var tp model.TrackerProfile
	if err := c.ShouldBindJSON(&tp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := service.ValidateTrackerProfile(tp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := service.SaveTrackerProfile(c.Request.Context(), h.kv, tp); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tp)
}

func (h *Handler) ListDates(c *gin.Context) {
	dates, err := service.LoggedDates(c.Request.Context(), h.kv)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *Handler) GetLog(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	dl, st, err := service.TodaySummary(c.Request.Context(), h.kv, date)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, logResponse{Log: dl, Status: st})
}

func (h *Handler) ExportLog(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	dl, err := service.LoadOrCreateLog(ctx, h.kv, date)
	if err != nil {
		handleError(c, err)
		return
	}
	tp, err := service.LoadTrackerProfile(ctx, h.kv)
	if err != nil {
		handleError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteDailyLogs(&buf, []model.DailyLog{dl}, tp); err != nil {
		handleError(c, fmt.Errorf("export log %s: %w", date, err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="ifcalc-`+date+`.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) AddFood(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" || !(req.Grams > 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required and grams must be > 0"})
		return
	}
	if err := service.ValidatePer100g(req.Per100g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := c.Request.Context()
	dl, err := service.LoadOrCreateLog(ctx, h.kv, date)
	if err != nil {
		handleError(c, err)
		return
	}
	dl, item, err := service.AddFood(ctx, h.kv, dl, service.FoodInput{Name: req.Name, Grams: req.Grams, Per100g: req.Per100g})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item, "log": dl})
}

func (h *Handler) RemoveFood(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := c.Request.Context()
	dl, err := service.LoadOrCreateLog(ctx, h.kv, date)
	if err != nil {
		handleError(c, err)
		return
	}
	_, removed, err := service.RemoveFood(ctx, h.kv, dl, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if !removed {
		handleError(c, errNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ResetDay(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": `reset requires {"confirm": true}`})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := c.Request.Context()
	dl, err := service.LoadOrCreateLog(ctx, h.kv, date)
	if err != nil {
		handleError(c, err)
		return
	}
	dl, err = service.ResetDay(ctx, h.kv, dl)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dl)
}

func dateParam(c *gin.Context) (string, bool) {
	date := c.Param("date")
	if date == "today" {
		date = ""
	}
	date, err := service.NormalizeDate(date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return date, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
