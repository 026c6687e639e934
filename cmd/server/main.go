package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"github.com/djf2128/WWGemini/collection"
	"github.com/djf2128/WWGemini/config"
	"github.com/djf2128/WWGemini/controllers"
	"github.com/djf2128/WWGemini/database"
	"github.com/djf2128/WWGemini/llm"
	"github.com/djf2128/WWGemini/logger"
	"github.com/djf2128/WWGemini/routes"
	"github.com/djf2128/WWGemini/services"
)

func main() {
	// Initialize Structured Logger
	logger.Init()

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system env vars")
	}

	// Pick the collection driver
	var col collection.Collection
	switch driver := config.GetEnv("COLLECTION_DRIVER", "postgres"); driver {
	case "memory":
		logger.Warn("Using in-memory collection; the log will not survive restarts")
		col = collection.NewMemory()
	default:
		database.InitDB()
		col = collection.NewPostgres(database.DB)
	}

	mgr := services.NewSessionManager(col, llm.NewClient(), config.AppID(), config.StatusTTL())
	controllers.Init(mgr)

	// Setup Router
	r := routes.SetupRouter(col)

	port := config.GetEnv("PORT", "8080")
	logger.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Error("Server failed to start", "error", err)
	}
}
