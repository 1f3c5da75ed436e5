package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/calendar"
	"github.com/username/holiday-calendar/internal/holidays"
	"github.com/username/holiday-calendar/internal/monthview"
	"github.com/username/holiday-calendar/pkg/dateutil"
)

type slotResponse struct {
	ID       int                `json:"id"`
	Day      int                `json:"day"`
	Blank    bool               `json:"blank"`
	Weekend  bool               `json:"weekend"`
	Color    calendar.SlotColor `json:"color"`
	Holidays []string           `json:"holidays"`
}

type holidayResponse struct {
	Date      string `json:"date"`
	LocalName string `json:"local_name"`
	Name      string `json:"name"`
}

// CalendarResponse is the JSON form of a month snapshot
type CalendarResponse struct {
	Year          int               `json:"year"`
	Month         int               `json:"month"`
	MonthName     string            `json:"month_name"`
	Country       string            `json:"country"`
	TodaySlotID   *int              `json:"today_slot_id"`
	WeekCounts    map[int]int       `json:"week_counts"`
	Slots         []slotResponse    `json:"slots"`
	MonthHolidays []holidayResponse `json:"month_holidays"`
	GeneratedAt   time.Time         `json:"generated_at"`
}

func newCalendarResponse(s monthview.Snapshot) CalendarResponse {
	resp := CalendarResponse{
		Year:          s.Selection.Year,
		Month:         int(s.Selection.Month),
		MonthName:     s.Selection.Month.String(),
		Country:       s.Selection.Country,
		WeekCounts:    s.WeekCounts,
		Slots:         make([]slotResponse, 0, len(s.Slots)),
		MonthHolidays: []holidayResponse{},
		GeneratedAt:   s.GeneratedAt,
	}
	if s.HasToday {
		id := s.TodaySlot
		resp.TodaySlotID = &id
	}

	for _, slot := range s.Slots {
		resp.Slots = append(resp.Slots, slotResponse{
			ID:       slot.ID,
			Day:      slot.Day,
			Blank:    slot.Blank(),
			Weekend:  s.IsWeekend(slot.ID),
			Color:    s.Color(slot.ID),
			Holidays: s.HolidayNames(slot.ID),
		})
	}
	for _, h := range s.MonthHolidays() {
		resp.MonthHolidays = append(resp.MonthHolidays, holidayResponse{
			Date:      dateutil.FormatDate(h.Date),
			LocalName: h.LocalName,
			Name:      h.Name,
		})
	}
	return resp
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid year")
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	sel := monthview.Selection{Year: year, Month: time.Month(month)}.WithCountry(vars["country"])
	if err := sel.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.builder.Build(r.Context(), sel)
	s.logger.Debug("Calendar served",
		zap.String("request_id", RequestID(r.Context())),
		zap.String("selection", sel.String()),
		zap.Int("month_holidays", len(snap.MonthHolidays())))

	respondWithJSON(w, http.StatusOK, newCalendarResponse(snap))
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, holidays.Countries())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "holiday-calendar"})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
