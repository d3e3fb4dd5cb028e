package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data,omitempty"`
	Playlist interface{} `json:"playlist,omitempty"`
	Error    interface{} `json:"error,omitempty"`
}

func ResponseWithSuccess(
	c *gin.Context,
	statusCode int,
	message string,
	data interface{},
) {
	c.JSON(statusCode, JSONResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ResponseWithPlaylist is the success shape of the generate endpoint:
// {"success": true, "playlist": {...}}.
func ResponseWithPlaylist(
	c *gin.Context,
	statusCode int,
	message string,
	playlist interface{},
) {
	c.JSON(statusCode, JSONResponse{
		Success:  true,
		Message:  message,
		Playlist: playlist,
	})
}

func ResponseWithError(
	c *gin.Context,
	statusCode int,
	message string,
	errorDetails interface{},
) {
	c.JSON(statusCode, JSONResponse{
		Success: false,
		Message: message,
		Error:   errorDetails,
	})
}
