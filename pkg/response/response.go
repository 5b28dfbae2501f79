package response

import (
	"net/http"

	"videotube/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorEnvelope struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

func JSON(c *gin.Context, status int, message string, data interface{}) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, Envelope{
		Status:  status,
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

func Error(c *gin.Context, err *apperror.Error) {
	c.AbortWithStatusJSON(err.Status, ErrorEnvelope{
		Status:  err.Status,
		Success: false,
		Message: err.Message,
		Errors:  err.Details,
	})
}
