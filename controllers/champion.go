package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"stem-inspires/models"
	"stem-inspires/repository"
	"stem-inspires/utils"
)

// ChampionStore persists champions
type ChampionStore interface {
	List(ctx context.Context) ([]models.Champion, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Champion, error)
	First(ctx context.Context) (*models.Champion, error)
	Create(ctx context.Context, c *models.Champion) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.ChampionPatch) (*models.Champion, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Champion, error)
}

// ChampionController handles champion requests
type ChampionController struct {
	Champions ChampionStore
	Images    Images
	Log       zerolog.Logger
}

// NewChampionController creates a new ChampionController
func NewChampionController(champions ChampionStore, images Images, log zerolog.Logger) *ChampionController {
	return &ChampionController{Champions: champions, Images: images, Log: log}
}

// GetChampions lists champions, newest season first
func (cc *ChampionController) GetChampions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	champions, err := cc.Champions.List(ctx)
	if err != nil {
		cc.Log.Error().Err(err).Msg("list champions")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch champions")
		return
	}
	utils.WriteJSON(w, http.StatusOK, champions)
}

// GetChampion returns a single champion
func (cc *ChampionController) GetChampion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid champion ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	champion, err := cc.Champions.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Champion not found")
		return
	}
	if err != nil {
		cc.Log.Error().Err(err).Str("id", id.Hex()).Msg("get champion")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch champion")
		return
	}
	utils.WriteJSON(w, http.StatusOK, champion)
}

// CreateChampion adds a champion from a multipart form with an optional image
func (cc *ChampionController) CreateChampion(w http.ResponseWriter, r *http.Request) {
	image, err := cc.Images.Save(w, r, utils.ChampionImages)
	if err != nil {
		utils.WriteError(w, uploadStatus(err), uploadMessage(err))
		return
	}

	f, err := readFields(r)
	if err != nil {
		cc.discard(image)
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	champion := models.Champion{
		Title:         f.get("title"),
		Season:        f.get("season"),
		Description:   f.get("description"),
		RoadToVictory: f.get("roadToVictory"),
		Image:         image,
		Alt:           f.get("alt"),
		ShowHeader:    true,
	}
	if champion.Title == "" || champion.Season == "" || champion.Description == "" || champion.RoadToVictory == "" {
		cc.discard(image)
		utils.WriteError(w, http.StatusBadRequest, "Title, season, description and road to victory are required")
		return
	}

	year, ok, err := championYear(f, champion.Season)
	if err != nil {
		cc.discard(image)
		utils.WriteError(w, http.StatusBadRequest, "Year must be a number")
		return
	}
	if !ok {
		year = time.Now().Year()
	}
	champion.Year = year

	if champion.Alt == "" {
		champion.Alt = champion.Title
	}
	if f.has("showHeader") {
		show, err := strconv.ParseBool(f.get("showHeader"))
		if err != nil {
			cc.discard(image)
			utils.WriteError(w, http.StatusBadRequest, "showHeader must be true or false")
			return
		}
		champion.ShowHeader = show
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := cc.Champions.Create(ctx, &champion); err != nil {
		cc.discard(image)
		cc.Log.Error().Err(err).Msg("create champion")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create champion")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, champion)
}

// UpdateChampion applies the provided fields to a champion
func (cc *ChampionController) UpdateChampion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid champion ID")
		return
	}

	image, err := cc.Images.Save(w, r, utils.ChampionImages)
	if err != nil {
		utils.WriteError(w, uploadStatus(err), uploadMessage(err))
		return
	}

	f, err := readFields(r)
	if err != nil {
		cc.discard(image)
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := models.ChampionPatch{
		Title:         f.optional("title"),
		Season:        f.optional("season"),
		Description:   f.optional("description"),
		RoadToVictory: f.optional("roadToVictory"),
		Alt:           f.optional("alt"),
	}
	if image != "" {
		patch.Image = &image
	}

	season := ""
	if patch.Season != nil {
		season = *patch.Season
	}
	year, ok, err := championYear(f, season)
	if err != nil {
		cc.discard(image)
		utils.WriteError(w, http.StatusBadRequest, "Year must be a number")
		return
	}
	if ok {
		patch.Year = &year
	}

	if f.has("showHeader") {
		show, err := strconv.ParseBool(f.get("showHeader"))
		if err != nil {
			cc.discard(image)
			utils.WriteError(w, http.StatusBadRequest, "showHeader must be true or false")
			return
		}
		patch.ShowHeader = &show
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	champion, err := cc.Champions.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		cc.discard(image)
		utils.WriteError(w, http.StatusNotFound, "Champion not found")
		return
	}
	if err != nil {
		cc.discard(image)
		cc.Log.Error().Err(err).Str("id", id.Hex()).Msg("update champion")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update champion")
		return
	}
	utils.WriteJSON(w, http.StatusOK, champion)
}

// DeleteChampion removes a champion
func (cc *ChampionController) DeleteChampion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid champion ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if _, err := cc.Champions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Champion not found")
			return
		}
		cc.Log.Error().Err(err).Str("id", id.Hex()).Msg("delete champion")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete champion")
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Champion deleted successfully")
}

// discard drops an upload whose request did not go through
func (cc *ChampionController) discard(image string) {
	if err := cc.Images.Remove(image); err != nil {
		cc.Log.Warn().Err(err).Str("image", image).Msg("discard champion image")
	}
}

// championYear resolves the year from an explicit field, falling back to
// the trailing year of the season label.
func championYear(f fields, season string) (int, bool, error) {
	if raw := f.get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false, err
		}
		return year, true, nil
	}
	year, ok := models.YearFromSeason(season)
	return year, ok, nil
}
