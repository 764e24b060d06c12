package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pulsecheck/pulse/internal/models"
	"github.com/pulsecheck/pulse/internal/rewards"
)

// maxBodyBytes bounds request bodies; a full check-in is well under 4 KiB.
const maxBodyBytes = 64 << 10

func (s *Server) submitCheckin(w http.ResponseWriter, r *http.Request) {
	var entry models.HealthEntry
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&entry); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	// the path decides whose check-in this is
	entry.UserID = mux.Vars(r)["user"]

	res, err := s.svc.Submit(entry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) listCheckins(w http.ResponseWriter, r *http.Request) {
	days, ok := queryDays(r)
	if !ok {
		badRequest(w, "days must be a non-negative integer")
		return
	}
	entries, err := s.svc.Entries(mux.Vars(r)["user"], days)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.HealthEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) nudgeStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Status(mux.Vars(r)["user"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type dismissResponse struct {
	Dismissed   bool                `json:"dismissed"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
}

func (s *Server) dismissNudge(w http.ResponseWriter, r *http.Request) {
	ok, appt, err := s.svc.Dismiss(mux.Vars(r)["user"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dismissResponse{Dismissed: ok, Appointment: appt})
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Evaluate(mux.Vars(r)["user"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type streakResponse struct {
	Streak     int           `json:"streak"`
	Tier       rewards.Tier  `json:"tier"`
	NextTier   *rewards.Tier `json:"next_tier,omitempty"`
	DaysToNext int           `json:"days_to_next,omitempty"`
}

func (s *Server) streak(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Status(mux.Vars(r)["user"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, streakResponse{
		Streak:     st.Streak,
		Tier:       st.Tier,
		NextTier:   st.NextTier,
		DaysToNext: st.DaysToNext,
	})
}

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := s.svc.Appointments(mux.Vars(r)["user"])
	if err != nil {
		writeError(w, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	writeJSON(w, http.StatusOK, appts)
}

type bookRequest struct {
	ClinicID string `json:"clinic_id"`
	Day      string `json:"day"`
	Time     string `json:"time"`
}

func (s *Server) bookAppointment(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	appt, err := s.svc.Book(mux.Vars(r)["user"], req.ClinicID, req.Day, req.Time)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

func (s *Server) transitionAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, id := vars["user"], vars["id"]

	var (
		appt models.Appointment
		err  error
	)
	switch vars["action"] {
	case "confirm":
		appt, err = s.svc.Confirm(user, id)
	case "cancel":
		appt, err = s.svc.Cancel(user, id)
	case "complete":
		appt, err = s.svc.Complete(user, id)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}
