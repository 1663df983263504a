package validators

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/karwanotmani/bazarpos-backend/pkg/enums"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
)

// PathUUID parses a uuid path parameter.
func PathUUID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}

// QueryPeriod parses the required reporting period parameter.
func QueryPeriod(r *http.Request) (enums.Period, error) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "period is required")
	}
	period, err := enums.ParsePeriod(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period")
	}
	return period, nil
}

// QueryAsOf parses the optional as_of anchor, defaulting to now.
func QueryAsOf(r *http.Request, now time.Time) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return now, nil
	}
	asOf, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid as_of timestamp")
	}
	return asOf.In(now.Location()), nil
}
