package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/hub-alert-service/pkg/common"
	"liyu1981.xyz/hub-alert-service/pkg/models"
)

type emailRequest struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	IsHTML  bool     `json:"is_html"`
}

var emailTemplate = template.Must(template.New("email").Parse(
	`<html><body><h2>{{.Subject}}</h2>{{range .Paragraphs}}<p>{{range $i, $line := .}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>{{end}}</body></html>`,
))

// renderEmailHTML escapes the plain text body and keeps its line structure:
// blank lines split paragraphs, single newlines become <br>.
func renderEmailHTML(subject, body string) (string, error) {
	var paragraphs [][]string
	for _, block := range strings.Split(strings.TrimSpace(body), "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			paragraphs = append(paragraphs, strings.Split(block, "\n"))
		}
	}

	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, struct {
		Subject    string
		Paragraphs [][]string
	}{subject, paragraphs})
	if err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}

// EmailSender delivers through the mailer HTTP API.
type EmailSender struct {
	poster
}

func NewEmailSender(url string, timeout time.Duration) *EmailSender {
	return &EmailSender{poster: newPoster(url, timeout)}
}

func (s *EmailSender) Send(ctx context.Context, n models.Notification) error {
	logger := common.GetLoggerWith(
		common.LoggerNameNotifier,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryEmail),
	)

	html, err := renderEmailHTML(n.Subject, n.Body)
	if err != nil {
		return err
	}

	err = s.post(ctx, emailRequest{
		To:      []string{n.Recipient},
		Subject: n.Subject,
		Body:    html,
		IsHTML:  true,
	})
	if err != nil {
		return err
	}

	logger.Info("Email notification accepted", zap.String("to", n.Recipient))
	return nil
}
