// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viniciusalbino/autoAtendeAI/internal/channel/web"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/dealership"
)

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeChatError(c *gin.Context, err error) {
	writeError(c, chatErrorStatus(err), chatErrorText(err))
}

func chatErrorStatus(err error) int {
	switch {
	case errors.Is(err, web.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, dealership.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func chatErrorText(err error) string {
	switch chatErrorStatus(err) {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusNotFound:
		return "dealership not found"
	default:
		return "internal error"
	}
}
