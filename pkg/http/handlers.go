package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"liyu1981.xyz/hub-alert-service/pkg/alerting"
	"liyu1981.xyz/hub-alert-service/pkg/models"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func (rs *RestfulServer) PostIngest(c *gin.Context) {
	req, err := alerting.ParseReading(zhttp.Request(c.Request))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !rs.CheckHubLimiter(req.SourceID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	result, err := rs.Engine.HandleMeasurement(c.Request.Context(), req.Measurement())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"reading":         result.Reading,
		"alert_triggered": result.AlertTriggered,
		"alert_created":   result.AlertCreated(),
	})
}

type HubRequest struct {
	Name    string `json:"name" zog:"name"`
	OwnerID string `json:"owner_id" zog:"owner_id"`
}

var hubRequestSchema = z.Struct(z.Shape{
	"Name":    z.String().Trim().Required(),
	"OwnerID": z.String().Trim().Required(),
})

func (rs *RestfulServer) PutHub(c *gin.Context) {
	hubID := c.Param("hub_id")

	var req HubRequest
	if err := hubRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": alerting.NewValidationError(err).Error()})
		return
	}

	hub := models.Hub{ID: hubID, Name: req.Name, OwnerID: req.OwnerID}
	if err := rs.Engine.RegisterHub(c.Request.Context(), &hub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, hub)
}

type AlertQuery struct {
	Resolved *bool   `zog:"resolved"`
	Kind     *string `zog:"kind"`
	Limit    int     `zog:"limit"`
	Offset   int     `zog:"offset"`
}

var alertQuerySchema = z.Struct(z.Shape{
	"Resolved": z.Ptr(z.Bool()),
	"Kind":     z.Ptr(z.String().OneOf([]string{string(models.AlertKindTemperature), string(models.AlertKindHumidity), string(models.AlertKindBoth)})),
	"Limit":    z.Int().GTE(0).LTE(1000).Default(100),
	"Offset":   z.Int().GTE(0),
})

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	hubID := c.Param("hub_id")

	if !rs.CheckHubLimiter(hubID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var query AlertQuery
	if err := alertQuerySchema.Parse(zhttp.Request(c.Request), &query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": alerting.NewValidationError(err).Error()})
		return
	}

	filter := models.AlertFilter{
		HubID:    hubID,
		Resolved: query.Resolved,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if query.Kind != nil {
		kind := models.AlertKind(*query.Kind)
		filter.Kind = &kind
	}

	alerts, err := rs.Engine.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

type ReadingQuery struct {
	Since  *time.Time `zog:"since"`
	Until  *time.Time `zog:"until"`
	Limit  int        `zog:"limit"`
	Offset int        `zog:"offset"`
}

var readingQuerySchema = z.Struct(z.Shape{
	"Since":  z.Ptr(z.Time()),
	"Until":  z.Ptr(z.Time()),
	"Limit":  z.Int().GTE(0).LTE(1000).Default(100),
	"Offset": z.Int().GTE(0),
})

func (rs *RestfulServer) GetReadings(c *gin.Context) {
	hubID := c.Param("hub_id")

	if !rs.CheckHubLimiter(hubID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var query ReadingQuery
	if err := readingQuerySchema.Parse(zhttp.Request(c.Request), &query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": alerting.NewValidationError(err).Error()})
		return
	}

	readings, err := rs.Engine.ListReadings(c.Request.Context(), models.MeasurementFilter{
		HubID:  hubID,
		Since:  query.Since,
		Until:  query.Until,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, readings)
}

func (rs *RestfulServer) PostResolveAlert(c *gin.Context) {
	alertID, err := strconv.ParseUint(c.Param("alert_id"), 10, 64)
	if err != nil || alertID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alert_id must be a positive integer"})
		return
	}

	alert, err := rs.Engine.ResolveAlert(c.Request.Context(), uint(alertID))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alert)
}

type PreferenceRequest struct {
	EmailEnabled    bool   `json:"email_enabled" zog:"email_enabled"`
	SMSEnabled      bool   `json:"sms_enabled" zog:"sms_enabled"`
	WhatsAppEnabled bool   `json:"whatsapp_enabled" zog:"whatsapp_enabled"`
	Email           string `json:"email" zog:"email"`
	PhoneNumber     string `json:"phone_number" zog:"phone_number"`
}

var preferenceRequestSchema = z.Struct(z.Shape{
	"EmailEnabled":    z.Bool(),
	"SMSEnabled":      z.Bool(),
	"WhatsAppEnabled": z.Bool(),
	"Email":           z.String().Trim(),
	"PhoneNumber":     z.String().Trim(),
})

func (rs *RestfulServer) PutPreference(c *gin.Context) {
	ownerID := c.Param("owner_id")

	var req PreferenceRequest
	if err := preferenceRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": alerting.NewValidationError(err).Error()})
		return
	}

	if err := rs.Engine.UpsertPreference(c.Request.Context(), ownerID, &models.NotificationPreference{
		EmailEnabled:    req.EmailEnabled,
		SMSEnabled:      req.SMSEnabled,
		WhatsAppEnabled: req.WhatsAppEnabled,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetPreference(c *gin.Context) {
	pref, err := rs.Engine.GetPreference(c.Request.Context(), c.Param("owner_id"))
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pref)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	hubID := c.Param("hub_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": alerting.NewValidationError(err).Error()})
		return
	}

	rs.SetLimiter(hubID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
