// Package handlers exposes the session state machine over HTTP. Handlers
// parse intents, dispatch to the session, and map its errors to status
// codes; streaming operations are delivered as server-sent events.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"promptsmith/models"
	"promptsmith/session"
)

type Manager struct {
	Session *session.Session
}

func NewManager(s *session.Session) *Manager {
	return &Manager{Session: s}
}

// Register mounts all API routes on the router.
func (m *Manager) Register(router *gin.Engine) {
	api := router.Group("/api")

	api.GET("/state", m.handleState)
	api.POST("/login", m.handleLogin)
	api.POST("/logout", m.handleLogout)

	api.POST("/generate", m.handleGenerate)
	api.POST("/refine", m.handleRefine)
	api.POST("/test", m.handleTest)
	api.POST("/test/clear", m.handleClearTest)

	api.POST("/history/select", m.handleSelectHistory)
	api.POST("/history/delete", m.handleDeleteHistory)
	api.POST("/history/clear", m.handleClearHistory)

	api.POST("/admin/settings", m.handleSaveSettings)
	api.POST("/prompt/copy", m.handleCopyPrompt)
	api.GET("/export/:thread", m.handleExport)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrMissingFields),
		errors.Is(err, session.ErrNoPrompt),
		errors.Is(err, session.ErrConfirmationRequired),
		errors.Is(err, session.ErrUnknownThread):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, session.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, session.ErrInvalidAccessCode):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrHistoryItemNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (m *Manager) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, m.Session.Snapshot())
}

func (m *Manager) handleLogin(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	level, err := m.Session.Login(req.Code)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessLevel": level})
}

func (m *Manager) handleLogout(c *gin.Context) {
	m.Session.Logout()
	c.JSON(http.StatusOK, gin.H{"accessLevel": models.AccessNone})
}

// streamSSE runs op and relays each published accumulation as an SSE
// "update" event, ending with "done" or "error". Guard failures that occur
// before the first fragment still arrive as an "error" event; the session
// enforces the real re-entrancy and configuration checks.
func streamSSE(c *gin.Context, op func(publish func(string)) (string, error)) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	updates := make(chan string, 16)
	type result struct {
		final string
		err   error
	}
	done := make(chan result, 1)

	go func() {
		final, err := op(func(full string) { updates <- full })
		close(updates)
		done <- result{final, err}
	}()

	for full := range updates {
		c.SSEvent("update", full)
		c.Writer.Flush()
	}

	res := <-done
	if res.err != nil {
		c.SSEvent("error", res.err.Error())
	} else {
		c.SSEvent("done", res.final)
	}
	c.Writer.Flush()
}

func (m *Manager) handleGenerate(c *gin.Context) {
	var req struct {
		Description    string `json:"description"`
		Tone           string `json:"tone"`
		TargetAudience string `json:"targetAudience"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Cheap pre-checks so obvious failures get a status code instead of a
	// half-open event stream.
	snap := m.Session.Snapshot()
	if !snap.BackendReady {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": session.ErrNotConfigured.Error()})
		return
	}
	if snap.Generating {
		c.JSON(http.StatusConflict, gin.H{"error": session.ErrBusy.Error()})
		return
	}

	ctx := c.Request.Context()
	streamSSE(c, func(publish func(string)) (string, error) {
		return m.Session.GeneratePrompt(ctx, req.Description, req.Tone, req.TargetAudience, publish)
	})
}

func (m *Manager) handleRefine(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap := m.Session.Snapshot()
	if !snap.BackendReady {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": session.ErrNotConfigured.Error()})
		return
	}
	if snap.Refining {
		c.JSON(http.StatusConflict, gin.H{"error": session.ErrBusy.Error()})
		return
	}

	ctx := c.Request.Context()
	streamSSE(c, func(publish func(string)) (string, error) {
		return m.Session.SendRefineMessage(ctx, req.Message, publish)
	})
}

func (m *Manager) handleTest(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap := m.Session.Snapshot()
	if !snap.BackendReady {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": session.ErrNotConfigured.Error()})
		return
	}
	if snap.Testing {
		c.JSON(http.StatusConflict, gin.H{"error": session.ErrBusy.Error()})
		return
	}
	if snap.GeneratedPrompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": session.ErrNoPrompt.Error()})
		return
	}

	ctx := c.Request.Context()
	streamSSE(c, func(publish func(string)) (string, error) {
		return m.Session.SendTestMessage(ctx, req.Message, publish)
	})
}

func (m *Manager) handleClearTest(c *gin.Context) {
	m.Session.ClearTestThread()
	c.JSON(http.StatusOK, m.Session.Snapshot())
}

func (m *Manager) handleSelectHistory(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := m.Session.SelectHistoryItem(req.ID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m.Session.Snapshot())
}

func (m *Manager) handleDeleteHistory(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	m.Session.DeleteHistoryItem(req.ID)
	c.JSON(http.StatusOK, gin.H{"history": m.Session.History()})
}

func (m *Manager) handleClearHistory(c *gin.Context) {
	var req struct {
		Confirmed bool `json:"confirmed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := m.Session.ClearAllHistory(req.Confirmed); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": m.Session.History()})
}

func (m *Manager) handleSaveSettings(c *gin.Context) {
	if m.Session.AccessLevel() != models.AccessAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	var req struct {
		AccessSecret string `json:"accessSecret"`
		GateEnabled  bool   `json:"isGateEnabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	m.Session.SaveAdminSettings(req.AccessSecret, req.GateEnabled)
	c.JSON(http.StatusOK, m.Session.AdminSettings())
}

func (m *Manager) handleCopyPrompt(c *gin.Context) {
	prompt, err := m.Session.CopyPrompt()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": prompt, "copiedRecently": true})
}

func (m *Manager) handleExport(c *gin.Context) {
	thread := models.Thread(c.Param("thread"))
	filename, content, err := m.Session.ExportThread(thread)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if custom := c.Query("filename"); custom != "" {
		filename = session.NormalizeTxtFilename(custom)
	}

	log.Debugf("exporting %s thread as %s", thread, filename)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}
