package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"stem-inspires/controllers"
	"stem-inspires/middleware"
)

// Controllers groups the handlers mounted by RegisterRoutes
type Controllers struct {
	Payments  *controllers.PaymentController
	Admin     *controllers.AdminController
	Champions *controllers.ChampionController
	Schools   *controllers.SchoolController
	FLL       *controllers.FLLController
	Banner    *controllers.BannerController
}

// RegisterRoutes sets up all the routes for the application. Uploaded and
// static files under publicDir are served last, at the root.
func RegisterRoutes(router *mux.Router, c Controllers, admins middleware.AdminFinder, publicDir string) {
	api := router.PathPrefix("/api").Subrouter()

	// Donation routes
	api.HandleFunc("/payments/stripe", c.Payments.CreateStripePayment).Methods("POST")
	api.HandleFunc("/payments/stripe/subscription", c.Payments.CreateStripeSubscription).Methods("POST")
	api.HandleFunc("/payments/paypal", c.Payments.CreatePayPalPayment).Methods("POST")
	api.HandleFunc("/payments", c.Payments.GetPayments).Methods("GET")

	// Admin routes
	api.HandleFunc("/admin/login", c.Admin.Login).Methods("POST")
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware(admins))
	admin.HandleFunc("/payments", c.Payments.GetAdminPayments).Methods("GET")
	admin.HandleFunc("/change-password", c.Admin.ChangePassword).Methods("PUT")

	// Champion routes
	api.HandleFunc("/champions", c.Champions.GetChampions).Methods("GET")
	api.HandleFunc("/champions", c.Champions.CreateChampion).Methods("POST")
	api.HandleFunc("/champions/{id}", c.Champions.GetChampion).Methods("GET")
	api.HandleFunc("/champions/{id}", c.Champions.UpdateChampion).Methods("PUT")
	api.HandleFunc("/champions/{id}", c.Champions.DeleteChampion).Methods("DELETE")

	// School routes
	api.HandleFunc("/schools", c.Schools.GetSchools).Methods("GET")
	api.HandleFunc("/schools", c.Schools.CreateSchool).Methods("POST")
	api.HandleFunc("/schools/{id}", c.Schools.GetSchool).Methods("GET")
	api.HandleFunc("/schools/{id}", c.Schools.UpdateSchool).Methods("PUT")
	api.HandleFunc("/schools/{id}", c.Schools.DeleteSchool).Methods("DELETE")

	// FLL routes
	api.HandleFunc("/fll", c.FLL.GetFLLs).Methods("GET")
	api.HandleFunc("/fll", c.FLL.CreateFLL).Methods("POST")
	api.HandleFunc("/fll/{id}", c.FLL.GetFLL).Methods("GET")
	api.HandleFunc("/fll/{id}", c.FLL.UpdateFLL).Methods("PUT")
	api.HandleFunc("/fll/{id}", c.FLL.DeleteFLL).Methods("DELETE")

	// Banner routes
	api.HandleFunc("/banner", c.Banner.GetBanner).Methods("GET")
	api.HandleFunc("/banner", c.Banner.UpdateBanner).Methods("PUT")

	if publicDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(publicDir)))
	}
}
