package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	mealdomain "github.com/nutritioner/nutritioner/internal/meal/domain"
	mealservice "github.com/nutritioner/nutritioner/internal/meal/service"
)

type logMealRequest struct {
	UserID      string `json:"user_id"`
	Description string `json:"description"`
	CreatedDate string `json:"created_date"`
}

func (s *Server) LogMeal(c *gin.Context) {
	var req logMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	createdDate, err := mealservice.ParseCreatedDate(req.CreatedDate)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.mealSvc.LogMeal(c.Request.Context(), mealdomain.LogMealRequest{
		UserID:      strings.TrimSpace(req.UserID),
		Description: strings.TrimSpace(req.Description),
		CreatedDate: createdDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) WeeklyStats(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	resp, err := s.mealSvc.WeeklyStats(c.Request.Context(), mealdomain.WeeklyStatsRequest{
		UserID: userID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
