package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/polisq/polisq/internal/audit"
	"github.com/polisq/polisq/internal/auth"
	"github.com/polisq/polisq/internal/history"
	"github.com/polisq/polisq/internal/nl2sql"
	"github.com/polisq/polisq/internal/observability"
	"github.com/polisq/polisq/internal/schema"
	"github.com/polisq/polisq/internal/stats"
)

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Question   string                `json:"question"`
	SQL        string                `json:"sql"`
	Model      string                `json:"model"`
	Columns    []string              `json:"columns"`
	Rows       [][]any               `json:"rows"`
	RowCount   int                   `json:"row_count"`
	Stats      []stats.ColumnSummary `json:"stats,omitempty"`
	DurationMs int64                 `json:"duration_ms"`
}

const translateFailedMessage = "could not generate a valid SQL query"

func handleAsk(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Translator == nil || deps.Engine == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "ASK_NOT_CONFIGURED", "ask dependencies are not configured", false, nil)
		return
	}
	if err := requireRole(r, auth.RoleReader); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	var request askRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid ask request body", false, map[string]any{"details": err.Error()})
		return
	}
	question := strings.TrimSpace(request.Question)
	if question == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", false, nil)
		return
	}

	started := time.Now()
	translateStart := time.Now()
	translated, err := deps.Translator.Translate(r.Context(), nl2sql.Request{
		Question:   question,
		SchemaText: schema.PromptText(),
	})
	observability.ObserveTranslation(time.Since(translateStart), err != nil)
	if err != nil {
		recordTurn(deps, history.Turn{Question: question, Error: translateFailedMessage})
		recordAudit(deps, audit.Record{
			Question:       question,
			Outcome:        audit.OutcomeTranslateFailed,
			DurationMicros: time.Since(started).Microseconds(),
		})
		writeError(r.Context(), w, http.StatusBadGateway, "TRANSLATE_FAILED", translateFailedMessage, true, map[string]any{"details": err.Error()})
		return
	}

	executeStart := time.Now()
	result, err := deps.Engine.Execute(r.Context(), translated.SQL)
	observability.ObserveExecution(time.Since(executeStart), err != nil)
	if err != nil {
		recordTurn(deps, history.Turn{Question: question, SQL: translated.SQL, Error: err.Error()})
		recordAudit(deps, audit.Record{
			Question:       question,
			SQL:            translated.SQL,
			Outcome:        audit.OutcomeExecutionFailed,
			DurationMicros: time.Since(started).Microseconds(),
		})
		writeError(r.Context(), w, http.StatusBadRequest, "QUERY_EXECUTION_FAILED", "query execution failed", false, map[string]any{
			"details": err.Error(),
			"sql":     translated.SQL,
		})
		return
	}

	summaries, _ := stats.Describe(result.Columns, result.Rows)

	recordTurn(deps, history.Turn{Question: question, SQL: translated.SQL, RowCount: len(result.Rows)})
	recordAudit(deps, audit.Record{
		Question:       question,
		SQL:            translated.SQL,
		Outcome:        audit.OutcomeOK,
		RowCount:       int64(len(result.Rows)),
		DurationMicros: time.Since(started).Microseconds(),
	})

	writeJSON(w, http.StatusOK, askResponse{
		Question:   question,
		SQL:        translated.SQL,
		Model:      translated.Model,
		Columns:    result.Columns,
		Rows:       result.Rows,
		RowCount:   len(result.Rows),
		Stats:      summaries,
		DurationMs: time.Since(started).Milliseconds(),
	})
}

func recordTurn(deps Dependencies, turn history.Turn) {
	if deps.Transcript != nil {
		deps.Transcript.Append(turn)
	}
}

func recordAudit(deps Dependencies, record audit.Record) {
	if deps.AuditLog != nil {
		deps.AuditLog.Append(record)
	}
}
