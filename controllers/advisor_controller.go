package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/djf2128/WWGemini/logger"
)

type SuggestMealRequest struct {
	Category string `json:"category"`
}

type SuggestMealResponse struct {
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions"`
}

// SuggestMeal asks the advisor for three ideas in the category's point
// range. Failures come back as an error body for the client to render in
// place of the list.
func SuggestMeal(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	var req SuggestMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ideas, err := sess.Advisor.SuggestMeal(r.Context(), req.Category)
	if err != nil {
		logger.Error("meal suggestion failed", "category", req.Category, "error", err)
		writeError(w, http.StatusBadGateway, "Couldn't get suggestions right now. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, SuggestMealResponse{Category: req.Category, Suggestions: ideas})
}

type AnalyzeDayResponse struct {
	Analysis string `json:"analysis"`
}

// AnalyzeDay summarizes the log and returns the oracle's free-text take
// verbatim. An empty log is a validation failure and makes no oracle call.
func AnalyzeDay(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	analysis, err := sess.Advisor.AnalyzeDay(r.Context())
	if err != nil {
		logger.Error("day analysis failed", "user_id", sess.UserID, "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeDayResponse{Analysis: analysis})
}
