package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"inspection-service/internal/closure"
	"inspection-service/internal/logging"
	"inspection-service/internal/notify"
)

type Handler struct {
	svc      *closure.Service
	feed     *notify.Feed
	hub      *notify.Hub
	logger   *logging.Logger
	upgrader websocket.Upgrader
}

func NewHandler(svc *closure.Service, feed *notify.Feed, hub *notify.Hub, logger *logging.Logger) *Handler {
	return &Handler{
		svc:    svc,
		feed:   feed,
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// GetClosableOrders lists the logged-in operator's completed-but-not-closed
// orders.
func (h *Handler) GetClosableOrders(c *gin.Context) {
	orders, err := h.svc.ClosableOrders(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to list closable orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list closable orders"})
		return
	}

	out := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		row := gin.H{
			"orderNumber": o.Number,
			"startTime":   o.StartedAt,
		}
		if o.Station != nil {
			row["stationName"] = o.Station.Name
		}
		if o.State != nil {
			row["stateName"] = o.State.Name
		}
		out = append(out, row)
	}
	c.JSON(http.StatusOK, out)
}

// GetReasonTypes lists the failure reason catalog.
func (h *Handler) GetReasonTypes(c *gin.Context) {
	reasons, err := h.svc.ReasonTypes(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to list reason types: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reason types"})
		return
	}

	out := make([]gin.H, 0, len(reasons))
	for _, rt := range reasons {
		out = append(out, gin.H{"code": rt.Code, "description": rt.Description})
	}
	c.JSON(http.StatusOK, out)
}

// CloseOrder runs the closure use case and answers with a plain-text
// success or rejection message.
func (h *Handler) CloseOrder(c *gin.Context) {
	var req closure.CloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Invalid close-order body: %v", err)
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.svc.CloseOrder(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorf("Close order %d failed: %v", req.OrderNumber, err)
		c.String(http.StatusInternalServerError, "Failed to close the order")
		return
	}
	c.String(http.StatusOK, msg)
}

// GetMonitoringFeed returns the current snapshot of the bounded event
// buffer, most recent last.
func (h *Handler) GetMonitoringFeed(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.Snapshot())
}

// FeedSocket upgrades the connection and streams every new feed entry until
// the client goes away.
func (h *Handler) FeedSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("Feed socket upgrade failed: %v", err)
		return
	}
	h.hub.Add(conn)

	// Reads are only used to detect the client closing.
	go func() {
		defer func() {
			h.hub.Remove(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
