package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	z "github.com/Oudwins/zog"
	"golang.org/x/time/rate"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/hub-alert-service/pkg/alerting"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

// statusResponse builds the {success, message, ...} envelope every method replies with.
func statusResponse(success bool, message string, fields map[string]any) (*structpb.Struct, error) {
	body := map[string]any{
		"success": success,
		"message": message,
	}
	for k, v := range fields {
		body[k] = v
	}
	return structpb.NewStruct(body)
}

func failure(err error) (*structpb.Struct, error) {
	return statusResponse(false, err.Error(), nil)
}

// Timestamps are RFC3339 strings, matching the REST JSON.
func readingFields(m models.Measurement) map[string]any {
	return map[string]any{
		"id":          float64(m.ID),
		"hub_id":      m.HubID,
		"temperature": m.Temperature,
		"humidity":    m.Humidity,
		"recorded_at": m.RecordedAt.Format(time.RFC3339Nano),
		"created_at":  m.CreatedAt.Format(time.RFC3339Nano),
	}
}

func alertFields(a models.Alert) any {
	fields := map[string]any{
		"id":          float64(a.ID),
		"hub_id":      a.HubID,
		"kind":        string(a.Kind),
		"message":     a.Message,
		"temperature": a.Temperature,
		"humidity":    a.Humidity,
		"resolved":    a.Resolved,
		"created_at":  a.CreatedAt.Format(time.RFC3339Nano),
	}
	if a.ResolvedAt != nil {
		fields["resolved_at"] = a.ResolvedAt.Format(time.RFC3339Nano)
	}
	return fields
}

func validateHubID(hubID *string) z.ZogIssueList {
	var hubIdValidator = z.String().Min(1).Required()
	return hubIdValidator.Validate(hubID)
}

func (s *HubAlertServer) Ingest(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	reading, err := alerting.ParseReading(req.AsMap())
	if err != nil {
		return failure(err)
	}

	result, err := s.Engine.HandleMeasurement(ctx, reading.Measurement())
	if err != nil {
		return failure(err)
	}

	return statusResponse(true, "OK", map[string]any{
		"reading":         readingFields(result.Reading),
		"alert_triggered": result.AlertTriggered,
		"alert_created":   result.AlertCreated(),
	})
}

type GetAlertsRequest struct {
	HubID    string  `json:"hub_id" zog:"hub_id"`
	Resolved *bool   `json:"resolved" zog:"resolved"`
	Kind     *string `json:"kind" zog:"kind"`
	Limit    int     `json:"limit" zog:"limit"`
	Offset   int     `json:"offset" zog:"offset"`
}

var getAlertsRequestSchema = z.Struct(z.Shape{
	"HubID":    z.String().Trim().Required(z.Message("hub_id is required")),
	"Resolved": z.Ptr(z.Bool()),
	"Kind":     z.Ptr(z.String().OneOf([]string{string(models.AlertKindTemperature), string(models.AlertKindHumidity), string(models.AlertKindBoth)})),
	"Limit":    z.Int().GTE(0).LTE(1000).Default(100),
	"Offset":   z.Int().GTE(0),
})

func (s *HubAlertServer) GetAlerts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in GetAlertsRequest
	if issues := getAlertsRequestSchema.Parse(req.AsMap(), &in); issues != nil {
		return failure(alerting.NewValidationError(issues))
	}

	filter := models.AlertFilter{
		HubID:    in.HubID,
		Resolved: in.Resolved,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if in.Kind != nil {
		kind := models.AlertKind(*in.Kind)
		filter.Kind = &kind
	}

	alerts, err := s.Engine.ListAlerts(ctx, filter)
	if err != nil {
		return failure(err)
	}

	return statusResponse(true, "OK", map[string]any{
		"alerts": common.Mapper(alerts, alertFields),
	})
}

type ResolveAlertRequest struct {
	AlertID int `json:"alert_id" zog:"alert_id"`
}

var resolveAlertRequestSchema = z.Struct(z.Shape{
	"AlertID": z.Int().Required(z.Message("alert_id is required")).GT(0, z.Message("alert_id must be a positive integer")),
})

func (s *HubAlertServer) ResolveAlert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ResolveAlertRequest
	if issues := resolveAlertRequestSchema.Parse(req.AsMap(), &in); issues != nil {
		return failure(alerting.NewValidationError(issues))
	}

	alert, err := s.Engine.ResolveAlert(ctx, uint(in.AlertID))
	if errors.Is(err, models.ErrNotFound) {
		return statusResponse(false, err.Error(), map[string]any{"not_found": true})
	}
	if err != nil {
		return failure(err)
	}

	return statusResponse(true, "OK", map[string]any{"alert": alertFields(*alert)})
}

type PostLimiterRequest struct {
	HubID string  `json:"hub_id" zog:"hub_id"`
	Rate  float64 `json:"rate" zog:"rate"`
	Burst int     `json:"burst" zog:"burst"`
}

var postLimiterRequestSchema = z.Struct(z.Shape{
	"Rate":  z.Float64().Required(),
	"Burst": z.Int().Required(),
})

func (s *HubAlertServer) PostLimiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in PostLimiterRequest
	data := req.AsMap()
	if issues := postLimiterRequestSchema.Parse(data, &in); issues != nil {
		return failure(alerting.NewValidationError(issues))
	}

	in.HubID, _ = data["hub_id"].(string)
	if err := validateHubID(&in.HubID); err != nil {
		return statusResponse(false, fmt.Sprintf("validation error: %v", err), nil)
	}

	if s.RateLimiterStore == nil {
		return statusResponse(false, "RateLimiterStore is not used. No effect.", nil)
	}

	s.RateLimiterStore.SetLimiter(in.HubID, rate.Limit(in.Rate), in.Burst)
	return statusResponse(true, "OK", nil)
}
