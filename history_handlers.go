package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ===== Result history: list & clear =====

func GetHistory(history *HistoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		results := history.Load()
		c.JSON(http.StatusOK, gin.H{
			"count":   len(results),
			"results": results,
		})
	}
}

func ClearHistory(history *HistoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		history.Clear()
		c.JSON(http.StatusOK, gin.H{"status": "cleared"})
	}
}
