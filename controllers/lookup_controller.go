package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/djf2128/WWGemini/models"
	"github.com/djf2128/WWGemini/points"
	"github.com/djf2128/WWGemini/services"
)

type PendingResponse struct {
	Pending models.PendingEntry `json:"pending"`
	Points  int                 `json:"points_preview"`
	State   string              `json:"state"`
}

func stateName(s services.LookupState) string {
	switch s {
	case services.LookupFetching:
		return "fetching"
	case services.LookupSuccess:
		return "success"
	case services.LookupFailure:
		return "failure"
	default:
		return "idle"
	}
}

func pendingResponse(sess *services.Session) PendingResponse {
	p := sess.Lookup.Pending()
	return PendingResponse{
		Pending: p,
		Points:  points.ForPending(p),
		State:   stateName(sess.Lookup.State()),
	}
}

// GetPending returns the current draft with a live points preview.
func GetPending(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pendingResponse(sess))
}

type PatchPendingRequest struct {
	Name     *string `json:"name"`
	Quantity *string `json:"quantity"`
	Unit     *string `json:"unit"`
}

// PatchPending edits the draft fields. Changing the name resets the
// looked-up nutrients and drops any in-flight lookup result.
func PatchPending(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	var req PatchPendingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name != nil {
		sess.Lookup.SetName(*req.Name)
	}
	if req.Unit != nil {
		if !models.ValidUnit(*req.Unit) {
			writeError(w, http.StatusUnprocessableEntity, "unknown unit")
			return
		}
		sess.Lookup.SetUnit(*req.Unit)
	}
	if req.Quantity != nil {
		sess.Lookup.SetQuantity(*req.Quantity)
	}
	writeJSON(w, http.StatusOK, pendingResponse(sess))
}

type LookupRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// LookupNutrients runs the nutrient lookup for the draft. Name and unit in
// the body, when present, update the draft first.
func LookupNutrients(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	// The body is optional, but a body that is present must parse.
	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name != "" {
		sess.Lookup.SetName(req.Name)
	}
	if req.Unit != "" {
		sess.Lookup.SetUnit(req.Unit)
	}

	if err := sess.Lookup.Lookup(r.Context()); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pendingResponse(sess))
}
