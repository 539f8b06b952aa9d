package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Created answers 201 with the id the store assigned.
func Created(c *gin.Context, id string) {
	JSON(c, http.StatusCreated, gin.H{"id": id})
}

// Success answers 200 {"success": true} for writes with no payload.
func Success(c *gin.Context) {
	OK(c, gin.H{"success": true})
}
