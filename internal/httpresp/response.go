package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the success envelope shared by every JSON response.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func Write(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func OK(c *gin.Context, data any, message string) {
	Write(c, http.StatusOK, data, message)
}

func Created(c *gin.Context, data any, message string) {
	Write(c, http.StatusCreated, data, message)
}
