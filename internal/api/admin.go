package api

import (
	"net/http"

	"github.com/polisq/polisq/internal/auth"
)

type resetResponse struct {
	Status      string `json:"status"`
	Addresses   int    `json:"addresses"`
	Customers   int    `json:"customers"`
	Agents      int    `json:"agents"`
	PolicyTypes int    `json:"policy_types"`
	Policies    int    `json:"policies"`
	Claims      int    `json:"claims"`
	Prospects   int    `json:"prospects"`
}

// handleReset drops the schema, reapplies migrations, and reloads
// fixtures. Everything in the store is lost, including data inserted
// through raw queries.
func handleReset(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Reset == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "RESET_NOT_CONFIGURED", "reset is not configured", false, nil)
		return
	}
	if err := requireRole(r, auth.RoleAdmin); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	summary, err := deps.Reset(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "RESET_FAILED", "reset failed", true, map[string]any{"details": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resetResponse{
		Status:      "ok",
		Addresses:   summary.Addresses,
		Customers:   summary.Customers,
		Agents:      summary.Agents,
		PolicyTypes: summary.PolicyTypes,
		Policies:    summary.Policies,
		Claims:      summary.Claims,
		Prospects:   summary.Prospects,
	})
}

type archiveResponse struct {
	Key         string `json:"key"`
	RecordCount int64  `json:"record_count"`
	SizeBytes   int64  `json:"size_bytes"`
}

func handleAuditArchive(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Archiver == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "ARCHIVE_NOT_CONFIGURED", "audit archiving is not configured", false, nil)
		return
	}
	if err := requireRole(r, auth.RoleAdmin); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error(), false, nil)
		return
	}

	result, err := deps.Archiver.Archive(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "ARCHIVE_FAILED", "audit archive failed", true, map[string]any{"details": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, archiveResponse{
		Key:         result.Key,
		RecordCount: result.RecordCount,
		SizeBytes:   result.Size,
	})
}
