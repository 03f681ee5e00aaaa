package http

import (
	"github.com/gin-gonic/gin"

	"peer-match/internal/domain"
	"peer-match/internal/service"
)

// Envelope de respuesta compatible con el frontend web:
// éxito {success, data, message}, error {success:false, error}.

func respondSuccess(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// respondModerationBlock expone el veredicto al remitente; los bloqueos de
// severidad alta incluyen además el mensaje de recursos de crisis.
func respondModerationBlock(c *gin.Context, verdict domain.ModerationVerdict) {
	body := gin.H{
		"success":  false,
		"error":    verdict.Reason,
		"severity": verdict.Severity,
	}
	if verdict.Severity == domain.SeverityHigh {
		body["supportMessage"] = service.CrisisSupportMessage
	}
	c.JSON(400, body)
}
