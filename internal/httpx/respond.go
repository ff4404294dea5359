package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/luu-sac/ceramics-api/internal/apperr"
)

// Response is the envelope every endpoint returns.
// swagger:model Response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func paginated(c *gin.Context, message string, data any, page, limit, total int) {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	c.JSON(200, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    &Meta{Page: page, Limit: limit, Total: total, TotalPages: pages},
	})
}

// fail maps the application error taxonomy onto transport status codes.
func fail(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), Response{
		Success: false,
		Message: apperr.Message(err),
		Data:    nil,
	})
}
