// Package messenger posts moderator notifications to the messenger gateway,
// which fans them out to the configured chat destination.
package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

// Logger is the subset of *log.Logger the notifier uses.
type Logger interface {
	Printf(format string, v ...any)
}

// Config wires the notifier.
type Config struct {
	Endpoint           string
	Destination        string
	AdminSubmissionURL string
	Timeout            time.Duration
	Attempts           int
	RetryDelay         time.Duration
	HTTPClient         *http.Client
	Logger             Logger
}

// Notifier implements the admin Notifier port.
type Notifier struct {
	endpoint    string
	destination string
	adminURL    string
	attempts    int
	retryDelay  time.Duration
	client      *http.Client
	logger      Logger
}

func NewNotifier(cfg Config) *Notifier {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 3
	}
	return &Notifier{
		endpoint:    strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		destination: strings.TrimSpace(cfg.Destination),
		adminURL:    strings.TrimRight(strings.TrimSpace(cfg.AdminSubmissionURL), "/"),
		attempts:    attempts,
		retryDelay:  cfg.RetryDelay,
		client:      client,
		logger:      cfg.Logger,
	}
}

// NotifyAwaitingReview tells moderators that submission is paid and ready to review.
func (n *Notifier) NotifyAwaitingReview(ctx context.Context, submission admindomain.Submission) error {
	if n.endpoint == "" {
		return nil
	}
	return n.sendWithRetry(ctx, submission.ID, buildAwaitingReviewMessage(n.adminURL, submission))
}

func buildAwaitingReviewMessage(adminURL string, submission admindomain.Submission) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("**%s** has paid and is awaiting review.\n", submission.Name))
	builder.WriteString(fmt.Sprintf("- Cuisines: %s\n", strings.Join(submission.Cuisines.Strings(), " / ")))
	builder.WriteString(fmt.Sprintf("- Postcode: %s\n", submission.Postcode))
	if submission.PaymentReference != "" {
		builder.WriteString(fmt.Sprintf("- Payment: %s\n", submission.PaymentReference))
	}
	if adminURL != "" && submission.ID != "" {
		builder.WriteString(fmt.Sprintf("[Review in admin](%s/%s)\n", adminURL, submission.ID))
	}
	return builder.String()
}

func (n *Notifier) sendWithRetry(ctx context.Context, identifier, text string) error {
	var lastErr error
	for i := 0; i < n.attempts; i++ {
		if err := n.send(ctx, identifier, text); err == nil {
			return nil
		} else {
			lastErr = err
			if n.logger != nil {
				n.logger.Printf("messenger attempt %d/%d failed: %v", i+1, n.attempts, err)
			}
		}
		if n.retryDelay > 0 && i < n.attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(n.retryDelay):
			}
		}
	}
	return lastErr
}

func (n *Notifier) send(ctx context.Context, identifier, text string) error {
	if strings.TrimSpace(identifier) == "" {
		return errors.New("identifier is required")
	}
	payload := map[string]any{
		"userId": identifier,
		"text":   text,
	}
	if n.destination != "" {
		payload["destination"] = n.destination
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode messenger payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build messenger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("messenger request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("messenger responded status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
