// Package notify pushes text messages to LINE and builds the daily lead digest.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/promphitak-p/praweena/internal/models"
)

// DefaultPushURL is the LINE Messaging API push endpoint
const DefaultPushURL = "https://api.line.me/v2/bot/message/push"

// maxTextLength is LINE's limit for a single text message
const maxTextLength = 5000

var (
	ErrNotConfigured = errors.New("line notify is not configured")
	ErrNoRecipient   = errors.New("no recipient given and no default recipient configured")
	ErrEmptyMessage  = errors.New("message text cannot be empty")
)

// Pusher sends one text message to a recipient
type Pusher interface {
	Push(ctx context.Context, to, text string) error
}

// Config holds the channel token and the default recipient
type Config struct {
	PushURL     string
	AccessToken string
	DefaultTo   string
	Timeout     time.Duration
}

// LineClient talks to the LINE push API
type LineClient struct {
	cfg  Config
	http *http.Client
}

// NewLineClient creates a client. A zero PushURL uses DefaultPushURL.
func NewLineClient(cfg Config) *LineClient {
	if cfg.PushURL == "" {
		cfg.PushURL = DefaultPushURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &LineClient{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// Push sends text to `to`, or to the default recipient when to is empty
func (c *LineClient) Push(ctx context.Context, to, text string) error {
	if c.cfg.AccessToken == "" {
		return ErrNotConfigured
	}
	if to == "" {
		to = c.cfg.DefaultTo
	}
	if to == "" {
		return ErrNoRecipient
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if r := []rune(text); len(r) > maxTextLength {
		text = string(r[:maxTextLength])
	}

	body, err := json.Marshal(pushRequest{To: to, Messages: []textMessage{{Type: "text", Text: text}}})
	if err != nil {
		return fmt.Errorf("failed to encode push request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.PushURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("line push failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// Notifier sends pushes without making callers wait on or handle failures
type Notifier struct {
	pusher  Pusher
	timeout time.Duration
}

// NewNotifier wraps a pusher for fire-and-forget use
func NewNotifier(p Pusher) *Notifier {
	return &Notifier{pusher: p, timeout: 15 * time.Second}
}

// Send pushes in the background; failures are logged only
func (n *Notifier) Send(to, text string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.pusher.Push(ctx, to, text); err != nil {
			slog.Warn("line push failed", "error", err)
		}
	}()
}

// FormatLead renders a new buyer enquiry as a chat message
func FormatLead(l *models.Lead) string {
	var b strings.Builder
	b.WriteString("📩 มีลูกค้าสนใจใหม่\n")
	fmt.Fprintf(&b, "ชื่อ: %s\n", orDash(l.FullName))
	fmt.Fprintf(&b, "โทร: %s\n", orDash(l.Phone))
	if l.PropertyTitle != nil && *l.PropertyTitle != "" {
		fmt.Fprintf(&b, "ทรัพย์: %s\n", *l.PropertyTitle)
	}
	if note := strings.TrimSpace(l.Note); note != "" {
		fmt.Fprintf(&b, "หมายเหตุ: %s\n", note)
	}
	return strings.TrimRight(b.String(), "\n")
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}
