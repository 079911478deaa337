package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/matzehuels/gridpath/pkg/buildinfo"
	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/solver"
)

// solveQuery holds the optional query parameters of the solve endpoints.
type solveQuery struct {
	Mode      string `schema:"mode"`
	StepLimit int    `schema:"step_limit"`
	Refresh   bool   `schema:"refresh"`
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)

	req, err := s.decodeRequest(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Code:    errors.ErrCodeInvalidInput,
				Message: "request body too large",
			})
			return
		}
		s.writeError(w, err)
		return
	}
	if err := s.applyQuery(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	resp, err := s.runner.Solve(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeRequest reads one JSON solve request. Unknown fields are rejected.
func (s *Server) decodeRequest(body io.Reader) (solver.Request, error) {
	var req solver.Request
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) || errors.GetCode(err) != "" {
			return req, err
		}
		return req, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request: %v", err)
	}
	return req, nil
}

// applyQuery overrides request fields with ?mode=, ?step_limit= and
// ?refresh=.
func (s *Server) applyQuery(r *http.Request, req *solver.Request) error {
	var q solveQuery
	if err := s.decoder.Decode(&q, r.URL.Query()); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "query: %v", err)
	}
	if q.Mode != "" {
		if err := req.Mode.UnmarshalText([]byte(q.Mode)); err != nil {
			return err
		}
	}
	if q.StepLimit != 0 {
		req.StepLimit = q.StepLimit
	}
	req.Refresh = req.Refresh || q.Refresh
	return nil
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeAborted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// bodyFor builds the error body. Internal errors are not echoed to clients.
func bodyFor(err error) errorBody {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if statusFor(err) == http.StatusInternalServerError {
		msg = "internal error"
	}
	return errorBody{Code: code, Message: msg}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("solve failed", "err", err)
	} else {
		s.logger.Debug("rejected request", "status", status, "err", err)
	}
	writeJSON(w, status, bodyFor(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
