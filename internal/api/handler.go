package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/franzenjb/hurricane-aid-production/internal/alerts"
	"github.com/franzenjb/hurricane-aid-production/internal/intake"
	"github.com/franzenjb/hurricane-aid-production/internal/models"
	"github.com/franzenjb/hurricane-aid-production/internal/notify"
	"github.com/franzenjb/hurricane-aid-production/internal/repository"
)

type Handler struct {
	intake     *intake.Service
	alerts     *alerts.Service
	requests   repository.RequestRepository
	resources  repository.ResourceRepository
	volunteers repository.VolunteerRepository
	roles      repository.RoleRepository
	verifier   TokenVerifier
}

func NewHandler(intakeSvc *intake.Service, alertSvc *alerts.Service,
	requests repository.RequestRepository, resources repository.ResourceRepository,
	volunteers repository.VolunteerRepository, roles repository.RoleRepository,
	verifier TokenVerifier) *Handler {
	return &Handler{
		intake:     intakeSvc,
		alerts:     alertSvc,
		requests:   requests,
		resources:  resources,
		volunteers: volunteers,
		roles:      roles,
		verifier:   verifier,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	api := r.Group("/api")
	api.POST("/requests", h.submitRequest)
	api.POST("/volunteers", h.registerVolunteer)
	api.GET("/resources", h.getResources)

	api.GET("/requests", h.authorize("intake_staff", "coordinator", "admin"), h.getRequests)
	api.POST("/alerts", h.authorize("coordinator", "admin"), h.sendAlert)
	api.POST("/export", h.authorize("intake_staff", "coordinator", "admin"), h.export)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type submitRequestBody struct {
	ResidentName string `json:"resident_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	NeedType     string `json:"need_type"`
	Priority     string `json:"priority"`
	Notes        string `json:"notes"`
	Source       string `json:"source"`
}

func (h *Handler) submitRequest(c *gin.Context) {
	var body submitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req, err := h.intake.SubmitRequest(c.Request.Context(), intake.RequestInput{
		ResidentName: body.ResidentName,
		Phone:        body.Phone,
		Email:        body.Email,
		Address:      body.Address,
		NeedType:     models.NeedType(body.NeedType),
		Priority:     models.Priority(body.Priority),
		Notes:        body.Notes,
		Source:       models.SourceChannel(body.Source),
	})
	if err != nil {
		if errors.Is(err, intake.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
			return
		}
		slog.Error("request intake failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": req.ID})
}

type registerVolunteerBody struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Skills     string `json:"skills"`
	AlertOptIn bool   `json:"alert_opt_in"`
}

func (h *Handler) registerVolunteer(c *gin.Context) {
	var body registerVolunteerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v, err := h.intake.RegisterVolunteer(c.Request.Context(), intake.VolunteerInput{
		Name:       body.Name,
		Phone:      body.Phone,
		Email:      body.Email,
		Address:    body.Address,
		Skills:     body.Skills,
		AlertOptIn: body.AlertOptIn,
	})
	if err != nil {
		if errors.Is(err, intake.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
			return
		}
		slog.Error("volunteer registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save volunteer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": v.ID})
}

type sendAlertBody struct {
	AlertType       string        `json:"alert_type"`
	Title           string        `json:"title"`
	Message         string        `json:"message"`
	RadiusKm        float64       `json:"radius_km"`
	Origin          *models.Point `json:"origin"`
	Audience        string        `json:"audience"`
	DispatchChannel string        `json:"dispatch_channel"`
}

func (h *Handler) sendAlert(c *gin.Context) {
	var body sendAlertBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	out, err := h.alerts.SendAlert(c.Request.Context(), alerts.AlertInput{
		Type:     models.AlertType(body.AlertType),
		Title:    body.Title,
		Message:  body.Message,
		RadiusKm: body.RadiusKm,
		Origin:   body.Origin,
		Audience: models.Audience(body.Audience),
		Channel:  models.Channel(body.DispatchChannel),
	})
	if err != nil {
		switch {
		case errors.Is(err, alerts.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		case errors.Is(err, alerts.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid field value"})
		case errors.Is(err, notify.ErrNoProvider):
			slog.Error("alert dispatch failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no notification provider configured"})
		default:
			slog.Error("alert dispatch failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send alert"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"alert_id":         out.AlertID,
		"recipients_found": out.RecipientsFound,
		"emails_sent":      out.EmailsSent,
		"sms_sent":         out.SMSSent,
	})
}

func (h *Handler) getRequests(c *gin.Context) {
	filter := repository.RequestFilter{
		Limit: 500,
	}

	if st := c.Query("status"); st != "" {
		status := models.RequestStatus(st)
		filter.Status = &status
	}
	if nt := c.Query("need_type"); nt != "" {
		needType := models.NeedType(nt)
		filter.NeedType = &needType
	}
	if p := c.Query("priority"); p != "" {
		priority := models.Priority(p)
		filter.Priority = &priority
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			filter.Limit = lim
		}
	}

	requests, err := h.requests.ListRequests(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch requests"})
		return
	}

	fc := requestsToGeoJSON(requests)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) getResources(c *gin.Context) {
	filter := repository.ResourceFilter{}

	if st := c.Query("status"); st != "" {
		status := models.ResourceStatus(st)
		filter.Status = &status
	}
	if ty := c.Query("type"); ty != "" {
		filter.Type = &ty
	}

	resources, err := h.resources.ListResources(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch resources"})
		return
	}

	fc := resourcesToGeoJSON(resources)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}
