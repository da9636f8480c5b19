package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func withRequestID(c *gin.Context, meta map[string]any) map[string]any {
	id := c.GetString(requestIDKey)
	if id == "" {
		return meta
	}
	if meta == nil {
		meta = map[string]any{}
	}
	meta["request_id"] = id
	return meta
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    withRequestID(c, meta),
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    withRequestID(c, meta),
	})
}
