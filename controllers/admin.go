package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"stem-inspires/middleware"
	"stem-inspires/models"
	"stem-inspires/repository"
	"stem-inspires/utils"
)

// AdminStore persists administrator accounts
type AdminStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Save(ctx context.Context, a *models.Admin) error
}

// AdminController handles admin authentication
type AdminController struct {
	Admins AdminStore
	Log    zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(admins AdminStore, log zerolog.Logger) *AdminController {
	return &AdminController{Admins: admins, Log: log}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login authenticates an admin and returns a JWT
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	admin, err := ac.Admins.FindByEmail(ctx, creds.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		ac.Log.Error().Err(err).Msg("find admin")
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if admin == nil || !admin.CheckPassword(creds.Password) {
		utils.WriteMessage(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateJWT(admin.ID.Hex(), admin.Email)
	if err != nil {
		ac.Log.Error().Err(err).Msg("sign token")
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ChangePassword replaces the authenticated admin's password after checking
// the current one
func (ac *AdminController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req passwordChange
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Current and new password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	admin, err := ac.Admins.FindByID(ctx, current.ID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "Admin not found")
		return
	}
	if err != nil {
		ac.Log.Error().Err(err).Msg("find admin")
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !admin.CheckPassword(req.CurrentPassword) {
		utils.WriteMessage(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	admin.Password = req.NewPassword
	if err := ac.Admins.Save(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Admin not found")
			return
		}
		ac.Log.Error().Err(err).Msg("save admin")
		utils.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Password updated successfully")
}
