package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mailcal/app/database"
	"mailcal/app/event"
	"mailcal/app/source"
	"mailcal/app/tasks"
)

func NewHandler(configCache *source.ConfigCache, sourceRepo database.SourceRepository,
	messageRepo database.MessageRepository, eventRepo database.EventRepository,
	scanner *event.Scanner, scheduler tasks.TaskSchedulerInterface,
	calendarClient tasks.CalendarClientInterface) *Handler {
	return &Handler{
		sourceRepo:     sourceRepo,
		messageRepo:    messageRepo,
		eventRepo:      eventRepo,
		generator:      event.NewGenerator(),
		configCache:    configCache,
		scanner:        scanner,
		scheduler:      scheduler,
		calendarClient: calendarClient,
	}
}

type scanRequest struct {
	Text        string `json:"text" binding:"required"`
	Fingerprint string `json:"fingerprint"`
}

// Scan runs extraction over an ad-hoc text body without storing anything.
// An optional fingerprint from a previous call short-circuits unchanged
// text.
func (h *Handler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid request body", "details": err.Error()})
		return
	}

	result := h.scanner.Run(req.Text, req.Fingerprint)

	events := make([]gin.H, 0, len(result.Events))
	for _, ev := range result.Events {
		events = append(events, eventJSON(ev))
	}

	failures := make([]gin.H, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, gin.H{
			"date":   f.Candidate.Date,
			"title":  f.Candidate.Title,
			"reason": f.Reason,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"failures":    failures,
		"fingerprint": result.Fingerprint,
		"unchanged":   result.Unchanged,
	})
}

func (h *Handler) GetEvents(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	storedEvents, err := h.eventRepo.GetEvents(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	events := make([]gin.H, 0, len(storedEvents))
	for _, ev := range storedEvents {
		events = append(events, storedEventJSON(ev))
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}

func (h *Handler) GetCalendar(c *gin.Context) {
	storedEvents, err := h.eventRepo.GetEvents(0)
	if err != nil {
		slog.Error("Database error", "operation", "get_events", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	ical, err := h.generator.Run(storedEvents)
	if err != nil {
		slog.Error("Calendar generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("X-Event-Count", strconv.Itoa(len(storedEvents)))

	c.String(http.StatusOK, ical)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if sourceCount, err := h.sourceRepo.GetSourceCount(); err == nil {
		health["sources"] = sourceCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"loaded_configurations": h.configCache.GetConfigCount(),
	}

	if sourceCount, err := h.sourceRepo.GetSourceCount(); err == nil {
		stats["sources"] = sourceCount
	}

	if messageCount, err := h.messageRepo.GetMessageCount(); err == nil {
		stats["messages"] = messageCount
	}

	if total, pushed, failed, err := h.eventRepo.GetEventStats(); err == nil {
		stats["events"] = map[string]interface{}{
			"total":  total,
			"pushed": pushed,
			"failed": failed,
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListSources(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	sources := make([]map[string]interface{}, 0, len(configs))

	for _, sourceConfig := range configs {
		sourceInfo := map[string]interface{}{
			"name":             sourceConfig.Name,
			"url":              sourceConfig.URL,
			"title":            "",
			"enabled":          sourceConfig.Settings.Enabled,
			"max_messages":     sourceConfig.Settings.MaxMessages,
			"refresh_interval": (time.Duration(sourceConfig.Settings.RefreshInterval) * time.Second).String(),
		}

		if src, err := h.sourceRepo.GetSource(sourceConfig.Name); err == nil && src != nil {
			sourceInfo["title"] = src.Title
			sourceInfo["last_fetched_at"] = src.LastFetchedAt
			sourceInfo["next_fetch_at"] = src.NextFetchAt
			sourceInfo["updated_at"] = src.UpdatedAt
		}

		sources = append(sources, sourceInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"sources": sources,
		"total":   len(sources),
	})
}

func (h *Handler) APIGetSourceDetails(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing source name parameter"})
		return
	}

	sourceConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Source configuration not found", "source", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Source configuration not found"})
		return
	}

	src, err := h.sourceRepo.GetSource(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_source", "source", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if src == nil {
		slog.Error("Source not found in database", "source", name)
		c.JSON(http.StatusNotFound, gin.H{"error": "Source not found in database"})
		return
	}

	details := map[string]interface{}{
		"name":             name,
		"url":              sourceConfig.URL,
		"title":            src.Title,
		"enabled":          sourceConfig.Settings.Enabled,
		"max_messages":     sourceConfig.Settings.MaxMessages,
		"refresh_interval": (time.Duration(sourceConfig.Settings.RefreshInterval) * time.Second).String(),
		"timeout":          (time.Duration(sourceConfig.Settings.Timeout) * time.Second).String(),
	}

	details["database"] = map[string]interface{}{
		"id":              src.ID,
		"name":            src.Name,
		"last_fetched_at": src.LastFetchedAt,
		"next_fetch_at":   src.NextFetchAt,
		"created_at":      src.CreatedAt,
		"updated_at":      src.UpdatedAt,
	}

	if messages, err := h.messageRepo.GetMessages(name, 0); err == nil {
		details["messages"] = map[string]interface{}{
			"total": len(messages),
		}
	}

	c.JSON(http.StatusOK, details)
}

func (h *Handler) APIRescanSource(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing source name parameter"})
		return
	}

	src, err := h.sourceRepo.GetSource(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_source", "source", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if src == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Source not found in database"})
		return
	}

	sourceConfig, err := h.configCache.LoadConfig(name)
	if err != nil {
		slog.Error("Error reloading configuration", "source", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload configuration",
			"details": err.Error(),
		})
		return
	}

	syncTask := tasks.NewSyncSourceConfigTask(name, sourceConfig, h.sourceRepo)
	err = h.scheduler.EnqueueTask(syncTask)
	if err != nil {
		slog.Error("Error enqueueing sync task", "source", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue sync task",
			"details": err.Error(),
		})
		return
	}

	rescanTask := tasks.NewRescanSourceTask(name, h.scanner, h.messageRepo, h.eventRepo)
	err = h.scheduler.EnqueueTask(rescanTask)
	if err != nil {
		slog.Error("Error enqueueing rescan task", "source", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue rescan task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Configuration reloaded and rescan enqueued successfully",
		"source": gin.H{
			"name":  name,
			"title": src.Title,
			"url":   sourceConfig.URL,
		},
		"tasks": []gin.H{
			{
				"id":   syncTask.ID,
				"type": syncTask.Type,
			},
			{
				"id":   rescanTask.ID,
				"type": rescanTask.Type,
			},
		},
	})
}

func (h *Handler) APIPushEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing event id parameter"})
		return
	}

	if h.calendarClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Calendar push is not configured"})
		return
	}

	stored, err := h.eventRepo.GetEvent(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_event", "event_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if stored == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	pushTask := tasks.NewPushEventTask(id, h.calendarClient, h.eventRepo)
	if err := h.scheduler.EnqueueTask(pushTask); err != nil {
		slog.Error("Error enqueueing push task", "event_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue push task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Push task enqueued",
		"event": gin.H{
			"id":      stored.ID,
			"summary": stored.Summary,
			"status":  stored.Status,
		},
		"task": gin.H{
			"id":   pushTask.ID,
			"type": pushTask.Type,
		},
	})
}

func eventJSON(ev event.Event) gin.H {
	reminders := make([]gin.H, 0, len(ev.Reminders))
	for _, r := range ev.Reminders {
		reminders = append(reminders, gin.H{"method": r.Method, "minutes": r.Minutes})
	}

	return gin.H{
		"summary":     ev.Summary,
		"description": ev.Description,
		"location":    ev.Location,
		"start":       ev.Start.Format(time.RFC3339),
		"end":         ev.End.Format(time.RFC3339),
		"timezone":    ev.TimeZone,
		"reminders":   reminders,
	}
}

func storedEventJSON(ev database.Event) gin.H {
	return gin.H{
		"id":            ev.ID,
		"message_id":    ev.MessageID,
		"summary":       ev.Summary,
		"description":   ev.Description,
		"location":      ev.Location,
		"start":         ev.StartAt.Format(time.RFC3339),
		"end":           ev.EndAt.Format(time.RFC3339),
		"timezone":      ev.TimeZone,
		"status":        ev.Status,
		"pushed_at":     ev.PushedAt,
		"calendar_link": ev.CalendarLink,
	}
}
