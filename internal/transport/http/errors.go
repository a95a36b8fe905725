package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidID          = "invalid_id"
	codeInvalidTimestamp   = "invalid_timestamp"
	codeTitleRequired      = "title_required"
	codeNameRequired       = "name_required"
	codeNameTaken          = "name_taken"
	codeInvalidStatus      = "invalid_status"
	codeInvalidKind        = "invalid_kind"
	codeInvalidPrice       = "invalid_price"
	codeInvalidThreshold   = "invalid_threshold"
	codeInvalidPointsDelta = "invalid_points_delta"
	codeNoValidZones       = "no_valid_zones"
	codeInvalidZoneFields  = "invalid_zone_fields"
	codePartialZoneUpdate  = "partial_zone_update"
	codeUnknownMediaFolder = "unknown_media_folder"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps service errors onto status/code pairs. Every
// handler funnels unrecognized errors to a generic 500 so storage
// details never leak to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	var partial *app.PartialApplyError
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusNotFound, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrVenueNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrFeedNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrPlanNotFound),
		errors.Is(err, domain.ErrSubscriptionNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrTierNotFound),
		errors.Is(err, domain.ErrPodcastNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrEventTitleRequired),
		errors.Is(err, domain.ErrFeedTitleRequired),
		errors.Is(err, domain.ErrPodcastTitleRequired):
		writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
	case errors.Is(err, domain.ErrVenueNameRequired),
		errors.Is(err, domain.ErrCategoryNameRequired),
		errors.Is(err, domain.ErrPlanNameRequired),
		errors.Is(err, domain.ErrTierNameRequired):
		writeError(w, http.StatusBadRequest, codeNameRequired, err.Error())
	case errors.Is(err, domain.ErrCategoryNameTaken):
		writeError(w, http.StatusConflict, codeNameTaken, err.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, codeInvalidStatus, err.Error())
	case errors.Is(err, domain.ErrInvalidVenueKind):
		writeError(w, http.StatusBadRequest, codeInvalidKind, err.Error())
	case errors.Is(err, domain.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case errors.Is(err, domain.ErrInvalidThreshold):
		writeError(w, http.StatusBadRequest, codeInvalidThreshold, err.Error())
	case errors.Is(err, domain.ErrInvalidPointsDelta):
		writeError(w, http.StatusBadRequest, codeInvalidPointsDelta, err.Error())
	case errors.Is(err, domain.ErrNoValidZones):
		writeError(w, http.StatusBadRequest, codeNoValidZones, err.Error())
	case errors.Is(err, domain.ErrInvalidZoneFields):
		writeError(w, http.StatusBadRequest, codeInvalidZoneFields, err.Error())
	case errors.As(err, &partial):
		writeError(w, http.StatusInternalServerError, codePartialZoneUpdate, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

var (
	errInvalidBody      = errors.New("invalid request body")
	errInvalidTimestamp = errors.New("invalid timestamp, expected RFC 3339")
)

// writeRequestError maps body-decode failures onto 400 responses.
func writeRequestError(w http.ResponseWriter, err error) {
	if errors.Is(err, errInvalidTimestamp) {
		writeError(w, http.StatusBadRequest, codeInvalidTimestamp, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
}
