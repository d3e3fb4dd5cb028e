package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ASHISH26940/pintunes-api/pkg/db"
	"github.com/ASHISH26940/pintunes-api/pkg/middleware"
	"github.com/ASHISH26940/pintunes-api/pkg/services"
	"github.com/ASHISH26940/pintunes-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// GenerateRequest is the body of POST /api/playlists/generate. The URL is not
// required at binding level so that an empty value reports the domain message.
type GenerateRequest struct {
	PinterestURL string `json:"pinterestUrl"`
}

type MoodAnalysisResponse struct {
	Mood  string   `json:"mood"`
	Songs []string `json:"songs"`
}

// PlaylistResponse mirrors the playlists row.
type PlaylistResponse struct {
	ID                uuid.UUID            `json:"id"`
	UserID            uuid.UUID            `json:"user_id"`
	Name              string               `json:"name"`
	Description       string               `json:"description"`
	PinterestBoardURL string               `json:"pinterest_board_url"`
	MoodAnalysis      MoodAnalysisResponse `json:"mood_analysis"`
	CreatedAt         string               `json:"created_at"`
}

func newPlaylistResponse(playlist *db.Playlist) PlaylistResponse {
	mood, err := playlist.Mood()
	if err != nil {
		log.Warnf("newPlaylistResponse: playlist %s has unreadable mood analysis: %v", playlist.ID.String(), err)
	}
	return PlaylistResponse{
		ID:                playlist.ID,
		UserID:            playlist.UserID,
		Name:              playlist.Name,
		Description:       playlist.Description,
		PinterestBoardURL: playlist.PinterestBoardURL,
		MoodAnalysis:      MoodAnalysisResponse{Mood: mood.Mood, Songs: mood.Songs},
		CreatedAt:         playlist.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// errorStatus maps generation failures onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrProviderRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, services.ErrProviderQuotaExhausted):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrProviderFailure):
		return http.StatusBadGateway
	case errors.Is(err, services.ErrPlaylistNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// GeneratePlaylist turns one Pinterest board URL into a stored playlist.
func (h *Handlers) GeneratePlaylist(c *gin.Context) {
	claims, exists := middleware.GetUserClaimsFromContext(c)
	if !exists {
		log.Error("GeneratePlaylist: User claims not found in context.")
		utils.ResponseWithError(c, http.StatusUnauthorized, services.ErrUnauthorized.Error(), services.ErrUnauthorized.Error())
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("GeneratePlaylist: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "Invalid request body", services.ErrValidation.Error())
		return
	}

	playlist, err := h.Playlists.Generate(c.Request.Context(), claims.UserID, req.PinterestURL)
	if err != nil {
		message := services.UserMessage(err)
		log.Debugf("GeneratePlaylist: generation for user %s failed: %v", claims.UserID.String(), err)
		utils.ResponseWithError(c, errorStatus(err), message, message)
		return
	}

	utils.ResponseWithPlaylist(c, http.StatusCreated, "Playlist generated successfully", newPlaylistResponse(playlist))
}

// GetUserPlaylists lists the caller's playlists, newest first.
func (h *Handlers) GetUserPlaylists(c *gin.Context) {
	claims, exists := middleware.GetUserClaimsFromContext(c)
	if !exists {
		log.Error("GetUserPlaylists: User claims not found in context.")
		utils.ResponseWithError(c, http.StatusInternalServerError, "Authentication error: User claims not found", nil)
		return
	}

	playlists, err := h.Playlists.List(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Errorf("GetUserPlaylists: Failed to fetch playlists for user %s: %v", claims.UserID.String(), err)
		utils.ResponseWithError(c, errorStatus(err), "Failed to load playlists", nil)
		return
	}

	responses := make([]PlaylistResponse, len(playlists))
	for i := range playlists {
		responses[i] = newPlaylistResponse(&playlists[i])
	}

	log.Debugf("Found %d playlists for user %s.", len(playlists), claims.UserID.String())
	utils.ResponseWithSuccess(c, http.StatusOK, "Playlists retrieved successfully", responses)
}

// GetPlaylistByID fetches a single playlist owned by the caller.
func (h *Handlers) GetPlaylistByID(c *gin.Context) {
	playlistIDParam := c.Param("id")
	playlistID, err := uuid.Parse(playlistIDParam)
	if err != nil {
		log.Warnf("GetPlaylistByID: Invalid playlist ID format '%s': %v", playlistIDParam, err)
		utils.ResponseWithError(c, http.StatusBadRequest, "Invalid playlist ID format", nil)
		return
	}

	claims, exists := middleware.GetUserClaimsFromContext(c)
	if !exists {
		log.Error("GetPlaylistByID: User claims not found in context.")
		utils.ResponseWithError(c, http.StatusInternalServerError, "Authentication error: User claims not found", nil)
		return
	}

	playlist, err := h.Playlists.Get(c.Request.Context(), claims.UserID, playlistID)
	switch {
	case errors.Is(err, services.ErrPlaylistNotFound), errors.Is(err, services.ErrForbidden):
		utils.ResponseWithError(c, errorStatus(err), err.Error(), nil)
		return
	case err != nil:
		log.Errorf("GetPlaylistByID: Failed to fetch playlist %s: %v", playlistID.String(), err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Failed to retrieve playlist", nil)
		return
	}

	utils.ResponseWithSuccess(c, http.StatusOK, "Playlist retrieved successfully", newPlaylistResponse(playlist))
}
