package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/djf2128/WWGemini/collection"
	"github.com/djf2128/WWGemini/controllers"
	"github.com/djf2128/WWGemini/middleware"
)

var feedCollection collection.Collection

func SetupRouter(col collection.Collection) *chi.Mux {
	feedCollection = col

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	// CORS Configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Everything else needs an authenticated (possibly anonymous) session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth)

		r.Post("/session", controllers.OpenSession)
		r.Delete("/session", controllers.CloseSession)
		r.Get("/status", controllers.GetStatus)

		r.Get("/log", controllers.GetLog)
		r.Post("/log", controllers.CommitPending)
		r.Delete("/log/{entry_id}", controllers.RemoveLogEntry)
		r.Delete("/log", controllers.ClearLog)

		r.Get("/pending", controllers.GetPending)
		r.Patch("/pending", controllers.PatchPending)
		r.Post("/lookup", controllers.LookupNutrients)

		r.Post("/advisor/suggest-meal", controllers.SuggestMeal)
		r.Post("/advisor/analyze-day", controllers.AnalyzeDay)

		// Live log feeds
		r.Get("/sse/log", LogSSE)
		r.Get("/ws/log", LogWS)
	})

	return r
}
