package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var body bookingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req, err := service.NewBookingRequest(body.ItemID, body.Start.Time, body.End.Time)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	booking, err := s.svc.Bookings.CreateBooking(r.Context(), req, callerFrom(r.Context()))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeBooking(w, r, booking)
}

func (s *HTTPServer) handleResolveBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	rawApproved := strings.TrimSpace(r.URL.Query().Get("approved"))
	if rawApproved == "" {
		writeError(w, http.StatusBadRequest, "approved is required")
		return
	}
	approved, err := strconv.ParseBool(rawApproved)
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	booking, err := s.svc.Bookings.ResolveBooking(r.Context(), bookingID, callerFrom(r.Context()), approved)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeBooking(w, r, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	booking, err := s.svc.Bookings.GetBooking(r.Context(), bookingID, callerFrom(r.Context()))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeBooking(w, r, booking)
}

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	query, err := parseBookingQuery(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	bookings, err := s.svc.Bookings.ListBookerBookings(r.Context(), callerFrom(r.Context()), query)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeBookings(w, r, bookings)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	query, err := parseBookingQuery(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	bookings, err := s.svc.Bookings.ListOwnerBookings(r.Context(), callerFrom(r.Context()), query)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeBookings(w, r, bookings)
}

func (s *HTTPServer) handleExportOwnerBookings(w http.ResponseWriter, r *http.Request) {
	if s.svc.Exporter == nil {
		writeError(w, http.StatusNotImplemented, "export is not configured")
		return
	}

	query, err := service.NewBookingQuery(r.URL.Query().Get("state"), 0, models.DefaultPageSize)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	callerID := callerFrom(r.Context())
	var buf bytes.Buffer
	if _, err := s.svc.Exporter.WriteOwnerBookings(r.Context(), &buf, callerID, query.State); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="bookings_%d_%s.xlsx"`, callerID, strings.ToLower(query.State.String())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var body itemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Available == nil {
		writeError(w, http.StatusBadRequest, "available is required")
		return
	}

	item := &models.Item{
		OwnerID:     callerFrom(r.Context()),
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	}
	if err := s.svc.Items.CreateItem(r.Context(), item); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newItemResponse(&models.ItemView{Item: *item}))
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	view, err := s.svc.Items.GetItem(r.Context(), itemID, callerFrom(r.Context()))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newItemResponse(view))
}

func (s *HTTPServer) handleListOwnerItems(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Items.GetOwnerItems(r.Context(), callerFrom(r.Context()))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	out := make([]itemResponse, 0, len(views))
	for _, v := range views {
		out = append(out, newItemResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body userRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user := &models.User{Name: body.Name, Email: body.Email}
	if err := s.svc.Users.CreateUser(r.Context(), user); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	user, err := s.svc.Users.GetUserByID(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (s *HTTPServer) writeBooking(w http.ResponseWriter, r *http.Request, booking *models.Booking) {
	item, err := s.svc.Items.GetItemByID(r.Context(), booking.ItemID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newBookingResponse(booking, item))
}

func (s *HTTPServer) writeBookings(w http.ResponseWriter, r *http.Request, bookings []*models.Booking) {
	items := make(map[int64]*models.Item)
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		item, ok := items[b.ItemID]
		if !ok {
			var err error
			item, err = s.svc.Items.GetItemByID(r.Context(), b.ItemID)
			if err != nil {
				s.writeDomainError(w, r, err)
				return
			}
			items[b.ItemID] = item
		}
		out = append(out, newBookingResponse(b, item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// parseBookingQuery reads state, from and size; absent values take the defaults.
func parseBookingQuery(r *http.Request) (models.BookingQuery, error) {
	q := r.URL.Query()
	def := service.DefaultBookingQuery()

	from, err := intParam(q.Get("from"), def.From)
	if err != nil {
		return models.BookingQuery{}, domain.Validationf("from must be an integer")
	}
	size, err := intParam(q.Get("size"), def.Size)
	if err != nil {
		return models.BookingQuery{}, domain.Validationf("size must be an integer")
	}
	return service.NewBookingQuery(q.Get("state"), from, size)
}

func intParam(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
