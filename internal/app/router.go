package app

import (
	"net/http"

	"github.com/almatbakh/staff-api/internal/auth"
	"github.com/almatbakh/staff-api/internal/employee"
	"github.com/almatbakh/staff-api/internal/httputil"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// SetupRouter mounts every endpoint behind its gate: the session lifecycle
// routes are open, /getEmployees and /changePresence require a valid access
// token, and the mutating employee routes additionally require the admin role.
func SetupRouter(codec *auth.Codec, authHandler *auth.Handler, employeeHandler *employee.Handler, frontendURL string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("API is running"))
	}).Methods("GET")
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httputil.Error(w, http.StatusNotFound, "Route not found")
	})

	// Session lifecycle
	r.HandleFunc("/signin", authHandler.SignIn).Methods("POST")
	r.HandleFunc("/refresh", authHandler.Refresh).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// Routes shared by admin and chef
	common := r.NewRoute().Subrouter()
	common.Use(auth.Authenticate(codec))
	common.HandleFunc("/getEmployees", employeeHandler.List).Methods("GET")
	common.HandleFunc("/changePresence", employeeHandler.ChangePresence).Methods("POST")

	// Admin-only routes
	admin := r.NewRoute().Subrouter()
	admin.Use(auth.Authenticate(codec), auth.RequireAdmin)
	admin.HandleFunc("/addEmployee", employeeHandler.Add).Methods("POST")
	admin.HandleFunc("/editEmployee", employeeHandler.Edit).Methods("PUT")
	admin.HandleFunc("/removeEmployee", employeeHandler.Remove).Methods("DELETE")
	admin.HandleFunc("/modifyAdvance", employeeHandler.ModifyAdvance).Methods("PUT")
	admin.HandleFunc("/deleteAdvance", employeeHandler.DeleteAdvance).Methods("DELETE")

	corsLayer := cors.New(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           3600,
	})
	return corsLayer.Handler(r)
}
