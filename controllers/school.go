package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"stem-inspires/models"
	"stem-inspires/repository"
	"stem-inspires/utils"
)

// SchoolStore persists schools
type SchoolStore interface {
	List(ctx context.Context) ([]models.School, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.School, error)
	Create(ctx context.Context, s *models.School) error
	Update(ctx context.Context, id primitive.ObjectID, patch models.SchoolPatch) (*models.School, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.School, error)
}

// SchoolController handles school requests
type SchoolController struct {
	Schools SchoolStore
	Images  Images
	Log     zerolog.Logger
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schools SchoolStore, images Images, log zerolog.Logger) *SchoolController {
	return &SchoolController{Schools: schools, Images: images, Log: log}
}

func (sc *SchoolController) GetSchools(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	schools, err := sc.Schools.List(ctx)
	if err != nil {
		sc.Log.Error().Err(err).Msg("list schools")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch schools")
		return
	}
	utils.WriteJSON(w, http.StatusOK, schools)
}

func (sc *SchoolController) GetSchool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid school ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	school, err := sc.Schools.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "School not found")
		return
	}
	if err != nil {
		sc.Log.Error().Err(err).Str("id", id.Hex()).Msg("get school")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch school")
		return
	}
	utils.WriteJSON(w, http.StatusOK, school)
}

// CreateSchool adds a school. The img field is empty when no file is sent.
func (sc *SchoolController) CreateSchool(w http.ResponseWriter, r *http.Request) {
	img, err := sc.Images.Save(w, r, utils.SchoolImages)
	if err != nil {
		utils.WriteError(w, uploadStatus(err), uploadMessage(err))
		return
	}

	f, err := readFields(r)
	if err != nil {
		sc.discard(img)
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	school := models.School{
		Name:     f.get("name"),
		Img:      img,
		Location: f.get("location"),
		Website:  f.get("website"),
	}
	if school.Name == "" || school.Location == "" {
		sc.discard(img)
		utils.WriteError(w, http.StatusBadRequest, "Name and location are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := sc.Schools.Create(ctx, &school); err != nil {
		sc.discard(img)
		sc.Log.Error().Err(err).Msg("create school")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create school")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, school)
}

// UpdateSchool applies the provided fields and an optional new image
func (sc *SchoolController) UpdateSchool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid school ID")
		return
	}

	img, err := sc.Images.Save(w, r, utils.SchoolImages)
	if err != nil {
		utils.WriteError(w, uploadStatus(err), uploadMessage(err))
		return
	}

	f, err := readFields(r)
	if err != nil {
		sc.discard(img)
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := models.SchoolPatch{
		Name:     f.optional("name"),
		Location: f.optional("location"),
	}
	// website may be cleared, so an empty value still counts
	if f.has("website") {
		website := f.get("website")
		patch.Website = &website
	}
	if img != "" {
		patch.Img = &img
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	school, err := sc.Schools.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		sc.discard(img)
		utils.WriteError(w, http.StatusNotFound, "School not found")
		return
	}
	if err != nil {
		sc.discard(img)
		sc.Log.Error().Err(err).Str("id", id.Hex()).Msg("update school")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update school")
		return
	}
	utils.WriteJSON(w, http.StatusOK, school)
}

// DeleteSchool removes the record and then its stored image, if any
func (sc *SchoolController) DeleteSchool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid school ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	school, err := sc.Schools.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "School not found")
		return
	}
	if err != nil {
		sc.Log.Error().Err(err).Str("id", id.Hex()).Msg("delete school")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete school")
		return
	}

	if err := sc.Images.Remove(school.Img); err != nil {
		sc.Log.Error().Err(err).Str("img", school.Img).Msg("remove school image")
		utils.WriteError(w, http.StatusInternalServerError, "School deleted but its image could not be removed")
		return
	}
	utils.WriteMessage(w, http.StatusOK, "School deleted successfully")
}

func (sc *SchoolController) discard(img string) {
	if err := sc.Images.Remove(img); err != nil {
		sc.Log.Warn().Err(err).Str("img", img).Msg("discard school image")
	}
}
