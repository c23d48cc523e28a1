package notify

import (
	"fmt"
	"strings"

	"inspection-service/internal/logging"
	"inspection-service/internal/models"
)

// DisplayChannel renders a closure notice into a human-readable block, logs
// it, appends it to the monitoring feed and pushes it to attached websocket
// clients.
type DisplayChannel struct {
	feed   *Feed
	hub    *Hub
	logger *logging.Logger
}

// NewDisplayChannel builds the on-screen channel. hub may be nil when no
// live feed is wired.
func NewDisplayChannel(feed *Feed, hub *Hub, logger *logging.Logger) *DisplayChannel {
	return &DisplayChannel{feed: feed, hub: hub, logger: logger}
}

func (d *DisplayChannel) Name() string { return "display" }

func (d *DisplayChannel) Update(notice models.ClosureNotice) {
	text := FormatNotice(notice)
	d.logger.Infof("Closure published:\n%s", text)
	d.feed.Push(text)
	if d.hub != nil {
		d.hub.Broadcast([]byte(text))
	}
}

// FormatNotice renders the block shown on monitoring screens and reused as
// the Telegram message body.
func FormatNotice(n models.ClosureNotice) string {
	return fmt.Sprintf(
		"CLOSURE NOTIFICATION\n"+
			"Seismograph ID: %d\n"+
			"New State: %s\n"+
			"Closed At: %s\n"+
			"Reasons: %s\n"+
			"Comments: %s\n"+
			"Responsible: %s",
		n.SeismographID,
		n.StateName,
		n.ClosedAt.Format("2006-01-02 15:04:05"),
		joinOr(n.Reasons, "none"),
		joinOr(n.Comments, "none"),
		joinOr(n.Recipients, "none"),
	)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
