package http

import (
	"github.com/gin-gonic/gin"

	"learnhub/pkg/logger"
)

// serveFeed upgrades the connection and subscribes it to the user's
// gamification event feed. Auth already ran; browsers pass the token via the
// query string since they cannot set headers on a WebSocket upgrade.
func (s *Server) serveFeed(c *gin.Context) {
	userID, _ := GetUserID(c)

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("websocket upgrade failed for user %s: %v", userID, err)
		return
	}

	s.hub.Register(userID, conn)
}
