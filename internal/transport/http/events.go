package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

// EventAdminService is the surface the event screens depend on.
type EventAdminService interface {
	CreateEvent(ctx context.Context, in app.EventInput) (domain.Event, error)
	GetEvent(ctx context.Context, id string) (app.EventWithZones, error)
	UpdateEvent(ctx context.Context, id string, in app.EventInput) (domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context, params app.ListParams) ([]domain.Event, int, error)
	UpdateZones(ctx context.Context, eventID string, original, current []app.DraftZone) ([]domain.Zone, error)
}

// Toggler flips a boolean flag and returns the written value.
type Toggler interface {
	Toggle(ctx context.Context, in app.ToggleInput) (bool, error)
}

// HandleEvents returns the handler for the event collection.
func HandleEvents(svc EventAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			params := parseListParams(r, "club_id", "featured")
			events, total, err := svc.ListEvents(r.Context(), params)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]eventResponse, 0, len(events))
			for _, ev := range events {
				resp = append(resp, toEventResponse(ev))
			}
			writeList(w, resp, total, params)
		case http.MethodPost:
			in, err := decodeEventRequest(r)
			if err != nil {
				writeRequestError(w, err)
				return
			}
			event, err := svc.CreateEvent(r.Context(), in)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toEventResponse(event))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleEventItem routes /admin/events/{id}, /admin/events/{id}/zones
// and /admin/events/{id}/featured.
func HandleEventItem(svc EventAdminService, toggles Toggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/events/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
			handleEventByID(w, r, svc, id)
		case "zones":
			if r.Method != http.MethodPut {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			var req updateZonesRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			zones, err := svc.UpdateZones(r.Context(), id, toDraftZones(req.Original), toDraftZones(req.Zones))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]zoneResponse, 0, len(zones))
			for _, z := range zones {
				resp = append(resp, toZoneResponse(z))
			}
			writeJSON(w, http.StatusOK, resp)
		case "featured":
			handleToggle(w, r, toggles, cache.EntityEvents, id, app.FieldFeatured)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func handleEventByID(w http.ResponseWriter, r *http.Request, svc EventAdminService, id string) {
	switch r.Method {
	case http.MethodGet:
		withZones, err := svc.GetEvent(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		zones := make([]zoneResponse, 0, len(withZones.Zones))
		for _, z := range withZones.Zones {
			zones = append(zones, toZoneResponse(z))
		}
		writeJSON(w, http.StatusOK, eventDetailResponse{
			eventResponse: toEventResponse(withZones.Event),
			Zones:         zones,
		})
	case http.MethodPut:
		in, err := decodeEventRequest(r)
		if err != nil {
			writeRequestError(w, err)
			return
		}
		event, err := svc.UpdateEvent(r.Context(), id, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(event))
	case http.MethodDelete:
		if err := svc.DeleteEvent(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

// handleToggle serves the POST {entity}/{id}/{flag} endpoints. The body
// carries the value the client last displayed; the negation is written.
func handleToggle(w http.ResponseWriter, r *http.Request, toggles Toggler, entity cache.Entity, id string, field app.ToggleField) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	value, err := toggles.Toggle(r.Context(), app.ToggleInput{
		Entity:  entity,
		ID:      id,
		Field:   field,
		Current: req.Current,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Value: value})
}

type toggleRequest struct {
	Current bool `json:"current"`
}

type toggleResponse struct {
	Value bool `json:"value"`
}

type eventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	StartsAt    string  `json:"starts_at,omitempty"`
	EndsAt      string  `json:"ends_at,omitempty"`
	ClubID      *string `json:"club_id"`
	CoverURL    string  `json:"cover_url"`
	Featured    bool    `json:"featured"`
}

func decodeEventRequest(r *http.Request) (app.EventInput, error) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		return app.EventInput{}, errInvalidBody
	}
	in := app.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		ClubID:      req.ClubID,
		CoverURL:    req.CoverURL,
		Featured:    req.Featured,
	}
	var err error
	if in.StartsAt, err = parseTimestamp(req.StartsAt); err != nil {
		return app.EventInput{}, err
	}
	if in.EndsAt, err = parseTimestamp(req.EndsAt); err != nil {
		return app.EventInput{}, err
	}
	return in, nil
}

func parseTimestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, errInvalidTimestamp
	}
	return &t, nil
}

type eventResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
	ClubID      *string `json:"club_id"`
	CoverURL    string  `json:"cover_url"`
	Featured    bool    `json:"featured"`
	CreatedAt   string  `json:"created_at"`
}

type eventDetailResponse struct {
	eventResponse
	Zones []zoneResponse `json:"zones"`
}

func toEventResponse(ev domain.Event) eventResponse {
	return eventResponse{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		StartsAt:    ev.StartsAt.Format(time.RFC3339),
		EndsAt:      ev.EndsAt.Format(time.RFC3339),
		ClubID:      ev.ClubID,
		CoverURL:    ev.CoverURL,
		Featured:    ev.Featured,
		CreatedAt:   ev.CreatedAt.Format(time.RFC3339),
	}
}

// draftZoneRequest mirrors the edit screen's working row: price and
// capacity stay free text until the reconciler validates them.
type draftZoneRequest struct {
	LocalID     string `json:"local_id"`
	DBID        string `json:"db_id"`
	Existing    bool   `json:"existing"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Capacity    string `json:"capacity"`
	Description string `json:"description"`
}

type updateZonesRequest struct {
	Original []draftZoneRequest `json:"original"`
	Zones    []draftZoneRequest `json:"zones"`
}

func toDraftZones(reqs []draftZoneRequest) []app.DraftZone {
	out := make([]app.DraftZone, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, app.DraftZone{
			LocalID:     req.LocalID,
			DBID:        req.DBID,
			Existing:    req.Existing,
			Name:        req.Name,
			Price:       req.Price,
			Capacity:    req.Capacity,
			Description: req.Description,
		})
	}
	return out
}

type zoneResponse struct {
	ID          string  `json:"id"`
	EventID     string  `json:"event_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	Description string  `json:"description"`
}

func toZoneResponse(z domain.Zone) zoneResponse {
	return zoneResponse{
		ID:          z.ID,
		EventID:     z.EventID,
		Name:        z.Name,
		Price:       z.Price,
		Capacity:    z.Capacity,
		Description: z.Description,
	}
}
