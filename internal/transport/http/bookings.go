package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
)

// BookingAdminService is the read/status surface for bookings. Admins
// never create bookings; the consumer app does.
type BookingAdminService interface {
	GetBooking(ctx context.Context, id string) (domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	ListBookings(ctx context.Context, params app.ListParams) ([]domain.Booking, int, error)
}

func HandleBookings(svc BookingAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		params := parseListParams(r, "status", "event_id")
		bookings, total, err := svc.ListBookings(r.Context(), params)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]bookingResponse, 0, len(bookings))
		for _, b := range bookings {
			resp = append(resp, toBookingResponse(b))
		}
		writeList(w, resp, total, params)
	}
}

func HandleBookingItem(svc BookingAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/bookings/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
		case "status":
			if r.Method != http.MethodPut {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			var req bookingStatusRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			booking, err := svc.UpdateStatus(r.Context(), id, domain.BookingStatus(req.Status))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toBookingResponse(booking))
			return
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			booking, err := svc.GetBooking(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toBookingResponse(booking))
		case http.MethodPut:
			var req bookingStatusRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			booking, err := svc.UpdateStatus(r.Context(), id, domain.BookingStatus(req.Status))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toBookingResponse(booking))
		case http.MethodDelete:
			if err := svc.DeleteBooking(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type bookingStatusRequest struct {
	Status string `json:"status"`
}

type bookingResponse struct {
	ID           string  `json:"id"`
	Reference    string  `json:"reference"`
	EventID      string  `json:"event_id"`
	ZoneID       *string `json:"zone_id"`
	UserID       string  `json:"user_id"`
	CustomerName string  `json:"customer_name"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:           b.ID,
		Reference:    b.Reference,
		EventID:      b.EventID,
		ZoneID:       b.ZoneID,
		UserID:       b.UserID,
		CustomerName: b.CustomerName,
		Quantity:     b.Quantity,
		TotalPrice:   b.TotalPrice,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
}
