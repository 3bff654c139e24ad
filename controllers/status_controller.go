package controllers

import (
	"net/http"

	apperrors "catalog-service/common/errors"

	"github.com/gin-gonic/gin"
)

type StatusController struct {
	status StatusServiceAPI
}

func NewStatusController(status StatusServiceAPI) *StatusController {
	return &StatusController{status: status}
}

func (sc *StatusController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Sneaker Store Backend Running"})
}

func (sc *StatusController) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the backend API!"})
}

// Test reports database connectivity. It always answers 200.
func (sc *StatusController) Test(c *gin.Context) {
	c.JSON(http.StatusOK, sc.status.Check(c.Request.Context()))
}

// Ready answers 200 once the document store responds to a ping, 503
// otherwise.
func (sc *StatusController) Ready(c *gin.Context) {
	if err := sc.status.Ready(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "READY"})
}

// Health is the liveness probe.
func (sc *StatusController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// NotFound renders unknown routes as a JSON error.
func (sc *StatusController) NotFound(c *gin.Context) {
	_ = c.Error(apperrors.ErrNotFound)
}
