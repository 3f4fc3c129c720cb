package controllers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"stem-inspires/utils"
)

// storeTimeout bounds every document store call made by a handler
const storeTimeout = 5 * time.Second

// Images stores uploaded pictures
type Images interface {
	Save(w http.ResponseWriter, r *http.Request, p utils.UploadPolicy) (string, error)
	Remove(url string) error
}

// pathID parses the {id} route variable
func pathID(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)["id"])
}

func isJSON(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/json"
}

// fields holds the text fields of a form or a JSON object body
type fields map[string]string

// readFields collects text fields from a JSON body or from the already
// parsed form. JSON numbers and booleans are kept in their text form.
func readFields(r *http.Request) (fields, error) {
	out := fields{}
	if isJSON(r) {
		var raw map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			switch v := v.(type) {
			case string:
				out[k] = v
			case bool:
				out[k] = strconv.FormatBool(v)
			case float64:
				out[k] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		return out, nil
	}
	if r.PostForm == nil {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}
	for k, v := range r.PostForm {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out, nil
}

func (f fields) get(key string) string {
	return strings.TrimSpace(f[key])
}

func (f fields) has(key string) bool {
	_, ok := f[key]
	return ok
}

// optional returns a pointer to the trimmed value, or nil when it is empty
func (f fields) optional(key string) *string {
	if v := f.get(key); v != "" {
		return &v
	}
	return nil
}

// uploadStatus maps an upload failure to a status code
func uploadStatus(err error) int {
	if errors.Is(err, utils.ErrInvalidUpload) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// uploadMessage strips the sentinel prefix from upload validation errors
func uploadMessage(err error) string {
	return strings.TrimPrefix(err.Error(), utils.ErrInvalidUpload.Error()+": ")
}
