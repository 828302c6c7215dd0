package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Hello World From BizOps Backend API v1"})
}

// userIDHeader carries the acting user for audit fields until an auth layer
// is attached in front of this API.
const userIDHeader = "X-User-ID"

const defaultUserID = "system"

func requestUserID(c *gin.Context) string {
	if userID := c.GetHeader(userIDHeader); userID != "" {
		return userID
	}
	return defaultUserID
}

// parseDateParam accepts plain dates and RFC3339 timestamps.
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
