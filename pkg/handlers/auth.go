package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/ASHISH26940/pintunes-api/pkg/db"
	"github.com/ASHISH26940/pintunes-api/pkg/db/queries"
	"github.com/ASHISH26940/pintunes-api/pkg/middleware"
	"github.com/ASHISH26940/pintunes-api/pkg/utils"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("LoginUser: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.Users.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Errorf("LoginUser: Error finding user by email: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Login failed", nil)
		return
	}
	if user == nil {
		log.Debugf("LoginUser: User with email '%s' not found.", req.Email)
		utils.ResponseWithError(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Debugf("LoginUser: Invalid password for user '%s'.", req.Email)
		utils.ResponseWithError(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := h.Tokens.GenerateToken(user.ID, user.Email, user.Username)
	if err != nil {
		log.Errorf("LoginUser: Failed to generate JWT token for user %s: %v", user.Email, err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Failed to generate authentication token", nil)
		return
	}

	log.Infof("User %s logged in successfully.", user.Email)
	utils.ResponseWithSuccess(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

func (h *Handlers) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("RegisterUser: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("RegisterUser: Error hashing password: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error hashing password", nil)
		return
	}

	user := &db.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	// The unique index on email decides races between concurrent sign-ups.
	createdUser, err := h.Users.CreateUser(c.Request.Context(), user)
	if errors.Is(err, queries.ErrDuplicateEmail) {
		log.Debugf("RegisterUser: User with email '%s' already exists.", req.Email)
		utils.ResponseWithError(c, http.StatusConflict, "User with email already exists", nil)
		return
	}
	if err != nil {
		log.Errorf("RegisterUser: Error creating user: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error creating user", nil)
		return
	}
	log.Infof("User with ID '%s' created.", createdUser.ID.String())

	utils.ResponseWithSuccess(c, http.StatusCreated, "User created successfully", gin.H{"user_id": createdUser.ID.String()})
}

func (h *Handlers) Profile(c *gin.Context) {
	claims, exists := middleware.GetUserClaimsFromContext(c)
	if !exists {
		log.Error("Profile: User claims not found in context for protected route.")
		utils.ResponseWithError(c, http.StatusInternalServerError, "Authentication error: User claims not found", nil)
		return
	}
	utils.ResponseWithSuccess(c, http.StatusOK, "Welcome to your profile!", gin.H{
		"user_id":  claims.UserID,
		"email":    claims.Email,
		"username": claims.Username,
	})
}

// DeleteUser deletes the caller's account. Identity comes only from the token.
func (h *Handlers) DeleteUser(c *gin.Context) {
	claims, exists := middleware.GetUserClaimsFromContext(c)
	if !exists {
		log.Error("DeleteUser: User claims not found in context.")
		utils.ResponseWithError(c, http.StatusInternalServerError, "Authentication error: User session data missing.", nil)
		return
	}

	err := h.Users.DeleteUser(c.Request.Context(), claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warnf("DeleteUser: User %s from a valid token not found. Already deleted?", claims.UserID.String())
		utils.ResponseWithError(c, http.StatusNotFound, "User account not found or already deleted.", nil)
		return
	}
	if err != nil {
		log.Errorf("DeleteUser: Error deleting user with ID '%s': %v", claims.UserID.String(), err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Failed to delete user account", nil)
		return
	}

	log.Infof("DeleteUser: User with ID '%s' deleted successfully.", claims.UserID.String())
	utils.ResponseWithSuccess(c, http.StatusOK, "User account deleted successfully", nil)
}
