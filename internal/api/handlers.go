package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/calmarendian/calendar-api/internal/calmar"
	"github.com/calmarendian/calendar-api/internal/config"
	"github.com/calmarendian/calendar-api/internal/database"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// DateRepresentation is the full JSON rendering of a single date.
type DateRepresentation struct {
	ADR            int    `json:"adr"`
	GrandCycle     int    `json:"grand_cycle"`
	Cycle          int    `json:"cycle"`
	Season         int    `json:"season"`
	Week           int    `json:"week"`
	Day            int    `json:"day"`
	GCN            string `json:"gcn"`
	CSN            string `json:"csn"`
	Colloquial     string `json:"colloquial"`
	ColloquialLong string `json:"colloquial_long"`
	AbsoluteCycle  int    `json:"absolute_cycle"`
	Era            string `json:"era"`
	EraName        string `json:"era_name"`
	AbsoluteSeason int    `json:"absolute_season"`
	DayName        string `json:"day_name"`
	SeasonName     string `json:"season_name"`
}

// representDate expands a date into all its renderings.
func representDate(d calmar.Date) DateRepresentation {
	acr, era := d.AbsoluteCycleRef()
	return DateRepresentation{
		ADR:            d.ADR(),
		GrandCycle:     d.GrandCycle().Number(),
		Cycle:          d.Cycle().Number(),
		Season:         d.Season().Number(),
		Week:           d.Week().Number(),
		Day:            d.Day().Number(),
		GCN:            d.GrandCycleNotation(),
		CSN:            d.CommonSymbolicNotation(calmar.EraDefault),
		Colloquial:     d.Colloquial(calmar.EraDefault, false),
		ColloquialLong: d.Colloquial(calmar.EraDefault, true),
		AbsoluteCycle:  acr,
		Era:            era.String(),
		EraName:        era.Name(),
		AbsoluteSeason: d.AbsoluteSeasonRef(),
		DayName:        d.Day().Name(),
		SeasonName:     d.Season().Name(),
	}
}

// writeCalendarError maps calendar engine errors onto HTTP responses.
func writeCalendarError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calmar.ErrFormat):
		WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_FORMAT")
	case errors.Is(err, calmar.ErrRange):
		WriteError(w, http.StatusBadRequest, err.Error(), "OUT_OF_RANGE")
	case errors.Is(err, calmar.ErrConversion):
		WriteError(w, http.StatusBadRequest, err.Error(), "NOT_AN_INTEGER")
	default:
		WriteInternalError(w, "Failed to process date")
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// GetDate handles GET /api/v1/dates/{date}
// The date may be in either Grand Cycle or Common Symbolic Notation.
func (h *Handlers) GetDate(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")

	date, err := calmar.Parse(dateStr)
	if err != nil {
		writeCalendarError(w, err)
		return
	}

	WriteSuccess(w, representDate(date))
}

// GetDateByADR handles GET /api/v1/dates/adr/{adr}
func (h *Handlers) GetDateByADR(w http.ResponseWriter, r *http.Request) {
	adrStr := chi.URLParam(r, "adr")

	adr, err := strconv.Atoi(adrStr)
	if err != nil {
		WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("cannot convert %q to an integer", adrStr), "NOT_AN_INTEGER")
		return
	}

	date, err := calmar.FromADR(adr)
	if err != nil {
		writeCalendarError(w, err)
		return
	}

	WriteSuccess(w, representDate(date))
}

// GetDateFromElements handles
// GET /api/v1/dates/elements?grand_cycle=&cycle=&season=&week=&day=
func (h *Handlers) GetDateFromElements(w http.ResponseWriter, r *http.Request) {
	var numbers [5]int
	for i, name := range []string{"grand_cycle", "cycle", "season", "week", "day"} {
		value := r.URL.Query().Get(name)
		if value == "" {
			WriteBadRequest(w, fmt.Sprintf("Query parameter %q is required", name))
			return
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			WriteError(w, http.StatusBadRequest,
				fmt.Sprintf("cannot convert %s=%q to an integer", name, value), "NOT_AN_INTEGER")
			return
		}
		numbers[i] = n
	}

	date, err := calmar.FromNumbers(numbers[0], numbers[1], numbers[2], numbers[3], numbers[4])
	if err != nil {
		writeCalendarError(w, err)
		return
	}

	WriteSuccess(w, representDate(date))
}

// eventResponse pairs a stored event with the renderings of its date.
type eventResponse struct {
	database.Event
	Date DateRepresentation `json:"date"`
}

// respondEvents renders stored events with their date representations.
// An unrepresentable stored ADR would mean corrupt data, so it fails hard.
func respondEvents(w http.ResponseWriter, events []*database.Event) error {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		date, err := calmar.FromADR(e.ADR)
		if err != nil {
			return fmt.Errorf("stored event %d has invalid ADR %d: %w", e.ID, e.ADR, err)
		}
		out = append(out, eventResponse{Event: *e, Date: representDate(date)})
	}
	return WriteSuccess(w, out)
}

// GetEventsByDate handles GET /api/v1/events/date/{date}
func (h *Handlers) GetEventsByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")

	date, err := calmar.Parse(dateStr)
	if err != nil {
		writeCalendarError(w, err)
		return
	}

	events, err := h.db.GetEventsByADR(r.Context(), date.ADR())
	if err != nil {
		h.logger.Error("failed to get events for date",
			slog.String("date", dateStr),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve events")
		return
	}

	if err := respondEvents(w, events); err != nil {
		h.logger.Error("failed to render events", slog.Any("error", err))
		WriteInternalError(w, "Failed to render events")
	}
}

// GetEventsInRange handles GET /api/v1/events/range?start=&end=
// Both bounds are date strings in either notation, inclusive.
func (h *Handlers) GetEventsInRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, err := calmar.Parse(startStr)
	if err != nil {
		writeCalendarError(w, err)
		return
	}
	end, err := calmar.Parse(endStr)
	if err != nil {
		writeCalendarError(w, err)
		return
	}

	if start.After(end) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	// Cap the span to prevent abuse
	if end.ADR()-start.ADR() > h.cfg.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	events, err := h.db.GetEventsInRange(r.Context(), start.ADR(), end.ADR())
	if err != nil {
		h.logger.Error("failed to get events in range",
			slog.String("start", startStr),
			slog.String("end", endStr),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve events")
		return
	}

	if err := respondEvents(w, events); err != nil {
		h.logger.Error("failed to render events", slog.Any("error", err))
		WriteInternalError(w, "Failed to render events")
	}
}

// CreateEvent handles POST /api/v1/events
// The event date may be given as a notation string or a raw ADR.
func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date    string `json:"date,omitempty"`
		ADR     *int   `json:"adr,omitempty"`
		Title   string `json:"title"`
		Details string `json:"details,omitempty"`
	}

	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.Title == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	var date calmar.Date
	var err error
	switch {
	case req.Date != "":
		date, err = calmar.Parse(req.Date)
	case req.ADR != nil:
		date, err = calmar.FromADR(*req.ADR)
	default:
		WriteBadRequest(w, "Either date or adr is required")
		return
	}
	if err != nil {
		writeCalendarError(w, err)
		return
	}

	event := &database.Event{
		ADR:   date.ADR(),
		Title: req.Title,
	}
	if req.Details != "" {
		event.Details = &req.Details
	}

	if err := h.db.CreateEvent(r.Context(), event); err != nil {
		h.logger.Error("failed to create event", slog.Any("error", err))
		WriteInternalError(w, "Failed to create event")
		return
	}

	WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    eventResponse{Event: *event, Date: representDate(date)},
	})
}

// DeleteEvent handles DELETE /api/v1/events/{id}
func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid event ID")
		return
	}

	if err := h.db.DeleteEvent(r.Context(), id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Event not found")
			return
		}
		h.logger.Error("failed to delete event", slog.Any("error", err))
		WriteInternalError(w, "Failed to delete event")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Event deleted"})
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}
