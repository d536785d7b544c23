package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lovelys-studio/backoffice/internal/domain/room"
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/handler/http/response"
	"github.com/lovelys-studio/backoffice/internal/pkg/validator"
)

// urlIntParam reads a numeric path parameter, writing a 400 when it is not a number.
func urlIntParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		response.BadRequest(w, "Invalid "+name, nil)
		return 0, false
	}
	return value, true
}

// periodQueryFromURL reads type, month, year, start and end from the query string.
func periodQueryFromURL(r *http.Request) (settlement.PeriodQuery, error) {
	q := r.URL.Query()
	query := settlement.PeriodQuery{
		Type:  strings.TrimSpace(q.Get("type")),
		Start: q.Get("start"),
		End:   q.Get("end"),
	}

	var errs validator.ValidationErrors
	if m := q.Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a number"})
		}
		query.Month = month
	}
	if y := q.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a number"})
		}
		query.Year = year
	}
	if len(errs) > 0 {
		return query, errs
	}

	if err := query.Validate(); err != nil {
		return query, err
	}
	return query, nil
}

// writeMutation answers a room mutator: 403 with the unchanged room when denied.
func writeMutation(w http.ResponseWriter, result room.MutationResult, err error, message string) {
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result.Outcome == room.OutcomeDenied {
		response.Denied(w, "Insufficient privileges for this action", result)
		return
	}
	response.SuccessWithMessage(w, message, result)
}

// decodeBody decodes a JSON body, treating an empty body as an empty object.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}
