package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"stem-inspires/models"
	"stem-inspires/repository"
	"stem-inspires/utils"
)

// BannerStore persists the singleton banner
type BannerStore interface {
	Get(ctx context.Context) (*models.Banner, error)
	Upsert(ctx context.Context, u models.BannerUpdate, image *string) (*models.Banner, error)
}

// FirstChampion looks up the oldest champion, whose image the banner shows
type FirstChampion interface {
	First(ctx context.Context) (*models.Champion, error)
}

// BannerController handles banner requests
type BannerController struct {
	Banner    BannerStore
	Champions FirstChampion
	Log       zerolog.Logger
}

// NewBannerController creates a new BannerController
func NewBannerController(banner BannerStore, champions FirstChampion, log zerolog.Logger) *BannerController {
	return &BannerController{Banner: banner, Champions: champions, Log: log}
}

// GetBanner returns the banner with the first champion's image
func (bc *BannerController) GetBanner(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	banner, err := bc.Banner.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, http.StatusNotFound, "Banner not found")
		return
	}
	if err != nil {
		bc.Log.Error().Err(err).Msg("get banner")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to fetch banner")
		return
	}

	image, err := bc.championImage(ctx)
	if err != nil {
		bc.Log.Error().Err(err).Msg("first champion")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to fetch banner")
		return
	}
	if image != nil {
		banner.Image = *image
	}
	utils.WriteJSON(w, http.StatusOK, banner)
}

// UpdateBanner edits the banner, creating it on first use
func (bc *BannerController) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	var u models.BannerUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	u.Title = strings.TrimSpace(u.Title)
	u.Description = strings.TrimSpace(u.Description)
	u.PrimaryColor = strings.TrimSpace(u.PrimaryColor)
	u.SecondaryColor = strings.TrimSpace(u.SecondaryColor)
	u.BackgroundColor = strings.TrimSpace(u.BackgroundColor)

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	image, err := bc.championImage(ctx)
	if err != nil {
		bc.Log.Error().Err(err).Msg("first champion")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to update banner")
		return
	}

	banner, err := bc.Banner.Upsert(ctx, u, image)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteMessage(w, http.StatusBadRequest, "Title and description are required to create the banner")
		return
	}
	if err != nil {
		bc.Log.Error().Err(err).Msg("upsert banner")
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to update banner")
		return
	}
	utils.WriteJSON(w, http.StatusOK, banner)
}

// championImage returns the first champion's image, or nil when there is
// no champion
func (bc *BannerController) championImage(ctx context.Context) (*string, error) {
	champion, err := bc.Champions.First(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &champion.Image, nil
}
