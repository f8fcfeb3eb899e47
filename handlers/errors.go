package handlers

import (
	"net/http"

	"carebook/services"
	"carebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError translates service errors into structured JSON responses.
// Business failures keep their stable code; anything uncoded is a 500.
func respondError(c *gin.Context, err error) {
	code := services.ErrorCode(err)
	status := statusForCode(code)
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("request failed", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func statusForCode(code string) int {
	switch code {
	case services.CodeNotFound:
		return http.StatusNotFound
	case services.CodeUnauthorized:
		return http.StatusForbidden
	case services.CodeSlotConflict, services.CodeProviderUnavailable, services.CodeAlreadyCancelled:
		return http.StatusConflict
	case services.CodeInvalidFee, services.CodeValidation:
		return http.StatusBadRequest
	case services.CodeGatewayUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
