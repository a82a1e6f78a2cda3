package server

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/gracepan/portfolio/internal/typing"
)

// typingStream pushes the hero animation to one view as server-sent
// events. The animation lives exactly as long as the request: when the
// client goes away the context ends and the pending timer is cancelled.
func (s *Server) typingStream(c *gin.Context) {
	frames := typing.Stream(c.Request.Context(), s.machine, s.clock)

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		f, ok := <-frames
		if !ok {
			return false
		}
		c.SSEvent("frame", f)
		return true
	})
}
