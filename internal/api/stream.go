package api

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// stream pushes the property's change events as server-sent events until
// the client goes away
func (h *handler) stream(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	if h.Events == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "live updates are disabled"})
		return
	}

	ch, unsubscribe := h.Events.Subscribe(propertyID)
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	heartbeat := time.NewTicker(h.Heartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(e.Type), e)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
