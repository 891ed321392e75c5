package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/promphitak-p/praweena/internal/database"
	"github.com/promphitak-p/praweena/internal/models"
)

// Bangkok is the fixed UTC+7 zone the business day is counted in
var Bangkok = time.FixedZone("ICT", 7*60*60)

// digestPreviewSize caps the number of leads listed by name
const digestPreviewSize = 10

// DayWindow returns the [start, end) of now's calendar day in UTC+7, in UTC
func DayWindow(now time.Time) (time.Time, time.Time) {
	local := now.In(Bangkok)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Bangkok)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// FormatDigest renders the Thai daily summary of leads for day
func FormatDigest(leads []*models.Lead, day time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 สรุปประจำวันที่ %s\n", day.In(Bangkok).Format("02/01/2006"))
	if len(leads) == 0 {
		b.WriteString("วันนี้ยังไม่มีลูกค้าติดต่อเข้ามา")
		return b.String()
	}

	fmt.Fprintf(&b, "ลูกค้าติดต่อใหม่ %d ราย\n", len(leads))
	for i, l := range leads {
		if i == digestPreviewSize {
			fmt.Fprintf(&b, "และอีก %d ราย", len(leads)-digestPreviewSize)
			break
		}
		line := fmt.Sprintf("%d. %s (%s)", i+1, orDash(l.FullName), orDash(l.Phone))
		if l.PropertyTitle != nil && *l.PropertyTitle != "" {
			line += " - " + *l.PropertyTitle
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Digest sends the daily lead summary
type Digest struct {
	leads  database.LeadStore
	pusher Pusher
	to     string
	now    func() time.Time
}

// NewDigest creates a digest job; to may be empty for the default recipient
func NewDigest(leads database.LeadStore, pusher Pusher, to string) *Digest {
	return &Digest{leads: leads, pusher: pusher, to: to, now: time.Now}
}

// Build returns today's summary text without sending it
func (d *Digest) Build(ctx context.Context) (string, error) {
	now := d.now()
	from, to := DayWindow(now)
	leads, err := d.leads.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("failed to load today's leads: %w", err)
	}
	return FormatDigest(leads, now), nil
}

// Queue builds today's summary and hands it to n without waiting for
// delivery. Only a failure to build the summary is returned.
func (d *Digest) Queue(ctx context.Context, n *Notifier) error {
	text, err := d.Build(ctx)
	if err != nil {
		return err
	}
	n.Send(d.to, text)
	return nil
}

// Run builds and pushes today's summary
func (d *Digest) Run(ctx context.Context) error {
	text, err := d.Build(ctx)
	if err != nil {
		return err
	}
	if err := d.pusher.Push(ctx, d.to, text); err != nil {
		return fmt.Errorf("failed to push digest: %w", err)
	}
	slog.Info("daily digest sent")
	return nil
}
