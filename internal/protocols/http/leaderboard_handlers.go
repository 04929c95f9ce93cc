package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"learnhub/pkg/models"
)

const (
	defaultLeaderboardLimit = 20
	maxLeaderboardLimit     = 100
)

// getLeaderboard returns one page of the requested ranking plus the caller's
// own rank
func (s *Server) getLeaderboard(c *gin.Context) {
	userID, _ := GetUserID(c)

	metric := models.LeaderboardMetric(c.DefaultQuery("metric", string(models.MetricXP)))
	if metric != models.MetricXP && metric != models.MetricWeeklyXP {
		fail(c, 400, "metric must be xp or weekly_xp")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLeaderboardLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	response, err := s.leaderboardSvc.Get(c.Request.Context(), metric, userID, offset, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", response)
}

// listEarnedBadges returns the user's earned badges
func (s *Server) listEarnedBadges(c *gin.Context) {
	userID, _ := GetUserID(c)

	badges, err := s.gamificationSvc.ListBadges(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", gin.H{"badges": badges})
}

// listBadgeCatalog returns every badge and its unlock criterion
func (s *Server) listBadgeCatalog(c *gin.Context) {
	ok(c, "", gin.H{"badges": s.gamificationSvc.Catalog()})
}
