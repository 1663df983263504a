package controllers

import (
	"net/http"
	"time"

	"github.com/karwanotmani/bazarpos-backend/api/responses"
	"github.com/karwanotmani/bazarpos-backend/api/validators"
	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
)

// ReportSummary aggregates the ledger over a period ending at as_of.
func ReportSummary(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := validators.QueryPeriod(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		asOf, err := validators.QueryAsOf(r, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := session.Summarize(r.Context(), period, asOf)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
