package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/polisq/polisq/internal/auth"
	"github.com/polisq/polisq/internal/nl2sql"
	"github.com/polisq/polisq/internal/observability"
	"github.com/polisq/polisq/internal/schema"
)

type queryRequest struct {
	SQL string `json:"sql"`
}

type queryResponse struct {
	Columns      []string       `json:"columns"`
	Rows         [][]any        `json:"rows"`
	RowCount     int            `json:"row_count"`
	RowsAffected int64          `json:"rows_affected"`
	Stats        map[string]any `json:"stats"`
}

// handleQuery executes caller-supplied SQL verbatim. Statements are not
// filtered by kind; the store's own errors are the only guard.
func handleQuery(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Engine == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "QUERY_NOT_CONFIGURED", "query dependencies are not configured", false, nil)
		return
	}
	if err := requireRole(r, auth.RoleReader); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	var request queryRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid query request body", false, map[string]any{"details": err.Error()})
		return
	}
	if strings.TrimSpace(request.SQL) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "SQL_REQUIRED", "sql is required", false, nil)
		return
	}

	executeStart := time.Now()
	result, err := deps.Engine.Execute(r.Context(), request.SQL)
	observability.ObserveExecution(time.Since(executeStart), err != nil)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "QUERY_EXECUTION_FAILED", "query execution failed", false, map[string]any{"details": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Columns:      result.Columns,
		Rows:         result.Rows,
		RowCount:     len(result.Rows),
		RowsAffected: result.RowsAffected,
		Stats: map[string]any{
			"duration_ms": result.Duration.Milliseconds(),
		},
	})
}

type translateRequest struct {
	Question string `json:"question"`
}

type translateResponse struct {
	Question string `json:"question"`
	SQL      string `json:"sql"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

func handleTranslateQuery(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Translator == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "TRANSLATE_NOT_CONFIGURED", "translator is not configured", false, nil)
		return
	}
	if err := requireRole(r, auth.RoleReader); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	var request translateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid translate request body", false, map[string]any{"details": err.Error()})
		return
	}
	question := strings.TrimSpace(request.Question)
	if question == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", false, nil)
		return
	}

	translateStart := time.Now()
	translated, err := deps.Translator.Translate(r.Context(), nl2sql.Request{
		Question:   question,
		SchemaText: schema.PromptText(),
	})
	observability.ObserveTranslation(time.Since(translateStart), err != nil)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadGateway, "TRANSLATE_FAILED", translateFailedMessage, true, map[string]any{"details": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{
		Question: question,
		SQL:      translated.SQL,
		Provider: translated.Provider,
		Model:    translated.Model,
	})
}
