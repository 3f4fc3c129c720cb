package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"stem-inspires/models"
	"stem-inspires/repository"
	"stem-inspires/utils"
)

// FLLStore persists FLL entries
type FLLStore interface {
	List(ctx context.Context) ([]models.FLL, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.FLL, error)
	Create(ctx context.Context, f *models.FLL) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.FLLPatch) (*models.FLL, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.FLL, error)
}

// FLLController handles FLL requests
type FLLController struct {
	Entries FLLStore
	Log     zerolog.Logger
}

// NewFLLController creates a new FLLController
func NewFLLController(entries FLLStore, log zerolog.Logger) *FLLController {
	return &FLLController{Entries: entries, Log: log}
}

type fllInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	MapURL      string `json:"mapUrl"`
}

func (in *fllInput) trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Logo = strings.TrimSpace(in.Logo)
	in.MapURL = strings.TrimSpace(in.MapURL)
}

// GetFLLs lists entries, newest first
func (fc *FLLController) GetFLLs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	entries, err := fc.Entries.List(ctx)
	if err != nil {
		fc.Log.Error().Err(err).Msg("list fll")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to fetch FLL entries")
		return
	}
	utils.WriteJSON(w, http.StatusOK, entries)
}

func (fc *FLLController) GetFLL(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid FLL ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	entry, err := fc.Entries.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "FLL entry not found")
		return
	}
	if err != nil {
		fc.Log.Error().Err(err).Str("id", id.Hex()).Msg("get fll")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to fetch FLL entry")
		return
	}
	utils.WriteJSON(w, http.StatusOK, entry)
}

func (fc *FLLController) CreateFLL(w http.ResponseWriter, r *http.Request) {
	var in fllInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in.trim()
	if in.Title == "" || in.Description == "" || in.Logo == "" {
		utils.WriteMessage(w, http.StatusBadRequest, "Title, description and logo are required")
		return
	}

	entry := models.FLL{
		Title:       in.Title,
		Description: in.Description,
		Logo:        in.Logo,
		MapURL:      in.MapURL,
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := fc.Entries.Create(ctx, &entry); err != nil {
		fc.Log.Error().Err(err).Msg("create fll")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to create FLL entry")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, entry)
}

func (fc *FLLController) UpdateFLL(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid FLL ID")
		return
	}

	var in fllInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in.trim()

	var patch models.FLLPatch
	if in.Title != "" {
		patch.Title = &in.Title
	}
	if in.Description != "" {
		patch.Description = &in.Description
	}
	if in.Logo != "" {
		patch.Logo = &in.Logo
	}
	if in.MapURL != "" {
		patch.MapURL = &in.MapURL
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	entry, err := fc.Entries.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "FLL entry not found")
		return
	}
	if err != nil {
		fc.Log.Error().Err(err).Str("id", id.Hex()).Msg("update fll")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to update FLL entry")
		return
	}
	utils.WriteJSON(w, http.StatusOK, entry)
}

func (fc *FLLController) DeleteFLL(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid FLL ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if _, err := fc.Entries.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "FLL entry not found")
			return
		}
		fc.Log.Error().Err(err).Str("id", id.Hex()).Msg("delete fll")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to delete FLL entry")
		return
	}
	utils.WriteMessage(w, http.StatusOK, "FLL entry deleted successfully")
}
