package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"stem-inspires/models"
	"stem-inspires/utils"
)

// Key type for context
type contextKey string

const AdminContextKey = contextKey("admin")

// AdminFinder resolves token subjects to admin accounts
type AdminFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
}

// AuthMiddleware verifies the bearer JWT, loads the admin it names and
// attaches it to the request context
func AuthMiddleware(admins AdminFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteMessage(w, http.StatusUnauthorized, "Authorization header missing")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.WriteMessage(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := utils.ParseJWT(parts[1])
			if err != nil || claims.Role != utils.RoleAdmin {
				utils.WriteMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.AdminID)
			if err != nil {
				utils.WriteMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			admin, err := admins.FindByID(r.Context(), id)
			if err != nil {
				utils.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the admin attached by AuthMiddleware
func AdminFromContext(ctx context.Context) (*models.Admin, bool) {
	admin, ok := ctx.Value(AdminContextKey).(*models.Admin)
	return admin, ok && admin != nil
}
