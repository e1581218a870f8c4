package alerting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	z "github.com/Oudwins/zog"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

// ReadingRequest is the inbound reading shared by the REST, gRPC and MQTT transports.
type ReadingRequest struct {
	SourceID    string    `json:"source_id" zog:"source_id"`
	Temperature float64   `json:"temperature" zog:"temperature"`
	Humidity    float64   `json:"humidity" zog:"humidity"`
	RecordedAt  time.Time `json:"recorded_at" zog:"recorded_at"`
}

var ReadingRequestSchema = z.Struct(z.Shape{
	"SourceID":    z.String().Trim().Min(1, z.Message("source_id is required")).Required(z.Message("source_id is required")),
	"Temperature": z.Float64().Required(z.Message("temperature must be a number")),
	"Humidity":    z.Float64().Required(z.Message("humidity must be a number")),
	"RecordedAt":  z.Time(),
})

func (r ReadingRequest) Measurement() models.Measurement {
	return models.Measurement{
		HubID:       r.SourceID,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		RecordedAt:  r.RecordedAt,
	}
}

// ParseReading validates raw input from any zog data source (a decoded map or zhttp.Request).
func ParseReading(data any) (ReadingRequest, error) {
	var req ReadingRequest
	if issues := ReadingRequestSchema.Parse(data, &req); issues != nil {
		return ReadingRequest{}, NewValidationError(issues)
	}
	return req, nil
}

type ValidationError struct {
	Issues z.ZogIssueMap
}

func NewValidationError(issues z.ZogIssueMap) *ValidationError {
	return &ValidationError{Issues: issues}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Issues))
	for key := range e.Issues {
		if strings.HasPrefix(key, "$first") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		for _, issue := range e.Issues[key] {
			if issue == nil {
				continue
			}
			parts = append(parts, issue.Message)
		}
	}
	if len(parts) == 0 {
		return "validation error"
	}
	return fmt.Sprintf("validation error: %s", strings.Join(parts, "; "))
}
