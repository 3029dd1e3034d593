package health

import (
	"github.com/gin-gonic/gin"

	"careerlaunch-backend/internal/shared/server/respond"
)

func (s *Service) root(c *gin.Context) {
	respond.Success(c, runningMessage, s.Status())
}
