package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/darideveloper/cotiza/pkg/domain"
	"github.com/darideveloper/cotiza/pkg/wizard"
)

// stateEnvelope is the response body for every session endpoint. Message
// codes held in the state are resolved into Messages for direct display.
type stateEnvelope struct {
	ID       string            `json:"id,omitempty"`
	State    *domain.FormState `json:"state"`
	Messages map[string]string `json:"messages,omitempty"`
	Error    string            `json:"error,omitempty"`
	QuoteID  string            `json:"quote_id,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// command is the envelope for one wizard operation, mirroring the engine's
// operation set.
type command struct {
	Type string `json:"type"`

	Step      int             `json:"step,omitempty"`
	FeatureID string          `json:"feature_id,omitempty"`
	SectionID string          `json:"section_id,omitempty"`
	Count     int             `json:"count,omitempty"`
	Currency  domain.Currency `json:"currency,omitempty"`
	Field     string          `json:"field,omitempty"`
	Value     string          `json:"value,omitempty"`
	Text      string          `json:"text,omitempty"`
	Accepted  bool            `json:"accepted,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	b := brandFrom(r.Context())
	id := uuid.NewString()

	state, err := s.svc.CreateSession(r.Context(), id, b.ID)
	if err != nil {
		s.logger.Error("create session failed", "err", err)
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	s.metrics.SessionsCreated.WithLabelValues(b.ID).Inc()
	writeJSON(w, http.StatusCreated, stateEnvelope{ID: id, State: state})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "quoteID")

	state, err := s.svc.GetSession(r.Context(), id)
	if err != nil {
		s.writeStateError(w, r, nil, err)
		return
	}
	s.writeState(w, r, http.StatusOK, &stateEnvelope{State: state})
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "quoteID")
	release := s.locks.acquire(id)
	defer release()

	var cmd command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := s.svc.Mutate(r.Context(), id, func(e *wizard.Engine, st *domain.FormState) error {
		return applyCommand(e, st, cmd)
	})
	if err != nil {
		s.writeStateError(w, r, state, err)
		return
	}

	s.metrics.CommandsHandled.WithLabelValues(cmd.Type).Inc()
	s.writeState(w, r, http.StatusOK, &stateEnvelope{State: state})
}

// applyCommand maps one command envelope onto the engine operation set.
func applyCommand(e *wizard.Engine, st *domain.FormState, cmd command) error {
	switch cmd.Type {
	case "next_step":
		return e.NextStep(st)
	case "prev_step":
		return e.PrevStep(st)
	case "go_to_step":
		return e.GoToStep(st, cmd.Step)
	case "toggle_feature":
		return e.ToggleFeature(st, cmd.FeatureID)
	case "toggle_section":
		return e.ToggleSection(st, cmd.SectionID)
	case "set_extra_sections":
		return e.SetExtraSections(st, cmd.Count)
	case "set_section_count":
		return e.SetSectionCount(st, cmd.Count)
	case "set_currency":
		return e.SetCurrency(st, cmd.Currency)
	case "set_client_field":
		return e.SetClientField(st, cmd.Field, cmd.Value)
	case "set_custom_features":
		return e.SetCustomFeatures(st, cmd.Text)
	case "set_questions":
		return e.SetQuestions(st, cmd.Text)
	case "set_privacy_accepted":
		return e.SetPrivacyAccepted(st, cmd.Accepted)
	default:
		return errUnknownCommand
	}
}

var errUnknownCommand = errors.New("unknown command type")

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "quoteID")
	release := s.locks.acquire(id)
	defer release()

	b := brandFrom(r.Context())
	locale := localeFor(r, b)

	start := time.Now()
	state, receipt, err := s.svc.Submit(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidationFailed):
			s.metrics.Submissions.WithLabelValues(b.ID, "validation_failed").Inc()
			s.writeState(w, r, http.StatusUnprocessableEntity, &stateEnvelope{State: state})
		case errors.Is(err, domain.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "quote not found")
		case errors.Is(err, domain.ErrSubmissionInFlight):
			writeError(w, http.StatusConflict, "submission already in flight")
		case errors.Is(err, domain.ErrAlreadyConfirmed):
			writeError(w, http.StatusConflict, "quote already confirmed")
		case errors.Is(err, domain.ErrInvalidStep):
			writeError(w, http.StatusConflict, "quote is not on the final step")
		default:
			// Relay rejection or network failure. The wizard stays on
			// the final step; the client may retry.
			s.metrics.Submissions.WithLabelValues(b.ID, "error").Inc()
			s.writeState(w, r, http.StatusBadGateway, &stateEnvelope{State: state})
		}
		return
	}

	s.metrics.Submissions.WithLabelValues(b.ID, "success").Inc()
	s.metrics.SubmitDuration.Observe(time.Since(start).Seconds())

	env := &stateEnvelope{
		State:   state,
		Message: s.bundle.T(locale, wizard.MsgSubmitSuccess, nil),
	}
	if receipt != nil {
		env.QuoteID = receipt.QuoteID
	}
	s.writeState(w, r, http.StatusOK, env)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "quoteID")
	release := s.locks.acquire(id)
	defer release()

	state, err := s.svc.Reset(r.Context(), id)
	if err != nil {
		s.writeStateError(w, r, state, err)
		return
	}
	s.writeState(w, r, http.StatusOK, &stateEnvelope{State: state})
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "quoteID")
	release := s.locks.acquire(id)
	defer release()

	if err := s.svc.Discard(r.Context(), id); err != nil {
		s.logger.Error("discard session failed", "err", err, "session_id", id)
		writeError(w, http.StatusInternalServerError, "could not discard session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeState localizes the message codes carried in the state before
// encoding the envelope.
func (s *Server) writeState(w http.ResponseWriter, r *http.Request, status int, env *stateEnvelope) {
	b := brandFrom(r.Context())
	locale := localeFor(r, b)

	if env.State != nil {
		if len(env.State.ValidationErrors) > 0 {
			env.Messages = make(map[string]string, len(env.State.ValidationErrors))
			for field, code := range env.State.ValidationErrors {
				env.Messages[field] = s.bundle.T(locale, code, nil)
			}
		}
		if env.State.LastError != "" {
			env.Error = s.bundle.T(locale, env.State.LastError, nil)
		}
	}
	writeJSON(w, status, env)
}

// writeStateError maps engine/store errors onto HTTP statuses.
func (s *Server) writeStateError(w http.ResponseWriter, r *http.Request, state *domain.FormState, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "quote not found")
	case errors.Is(err, domain.ErrAlreadyConfirmed),
		errors.Is(err, domain.ErrSubmissionInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnknownFeature),
		errors.Is(err, domain.ErrUnknownSection),
		errors.Is(err, domain.ErrRequiredSection),
		errors.Is(err, domain.ErrInvalidStep),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrNegativeCount),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, errUnknownCommand):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("handler error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
