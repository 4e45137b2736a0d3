package api

import (
	"net/http"

	"github.com/polisq/polisq/internal/auth"
	"github.com/polisq/polisq/internal/schema"
)

type schemaResponse struct {
	Tables        []schema.Table        `json:"tables"`
	Relationships []schema.Relationship `json:"relationships"`
	PromptText    string                `json:"prompt_text"`
}

func handleSchema(_ Dependencies, w http.ResponseWriter, r *http.Request) {
	if err := requireRole(r, auth.RoleReader); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}
	writeJSON(w, http.StatusOK, schemaResponse{
		Tables:        schema.Tables(),
		Relationships: schema.Relationships(),
		PromptText:    schema.PromptText(),
	})
}

func handleHistory(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if err := requireRole(r, auth.RoleReader); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}
	if deps.Transcript == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "HISTORY_NOT_CONFIGURED", "history is not configured", false, nil)
		return
	}
	turns := deps.Transcript.Turns()
	writeJSON(w, http.StatusOK, map[string]any{
		"turns": turns,
		"count": len(turns),
	})
}

// exampleQuestions are shown to first-time users; each one is known to
// translate cleanly against the fixture data.
var exampleQuestions = []string{
	"Show me all active policies with their customer names",
	"List all claims with amounts over $1000",
	"Find the top 5 customers by total premium paid",
	"Show the number of policies by type",
	"List all claims with customer and policy details",
}

func handleExamples(_ Dependencies, w http.ResponseWriter, r *http.Request) {
	if err := requireRole(r, auth.RoleReader); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": exampleQuestions})
}
