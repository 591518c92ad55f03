package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/remindkeeper/internal/common"
	"github.com/dmitrijs2005/remindkeeper/internal/contract"
	"github.com/dmitrijs2005/remindkeeper/internal/server/auth"
)

// handleEnvelope is the wire form of the handle message union: exactly one
// field must be present.
type handleEnvelope struct {
	Record             *contract.RecordMsg             `json:"record"`
	Read               *contract.ReadMsg               `json:"read"`
	GenerateViewingKey *contract.GenerateViewingKeyMsg `json:"generate_viewing_key"`
}

func (e *handleEnvelope) message() (contract.HandleMsg, bool) {
	var msg contract.HandleMsg
	count := 0
	if e.Record != nil {
		msg = *e.Record
		count++
	}
	if e.Read != nil {
		msg = *e.Read
		count++
	}
	if e.GenerateViewingKey != nil {
		msg = *e.GenerateViewingKey
		count++
	}
	return msg, count == 1
}

// queryEnvelope is the wire form of the query message union.
type queryEnvelope struct {
	Stats *contract.StatsMsg    `json:"stats"`
	Read  *contract.AuthReadMsg `json:"read"`
}

func (e *queryEnvelope) message() (contract.QueryMsg, bool) {
	var msg contract.QueryMsg
	count := 0
	if e.Stats != nil {
		msg = *e.Stats
		count++
	}
	if e.Read != nil {
		msg = *e.Read
		count++
	}
	return msg, count == 1
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// handleToken exchanges an address for a bearer token. This stands in for the
// host platform's own caller authentication.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Address == "" {
		writeError(w, http.StatusBadRequest, "address required")
		return
	}

	token, err := auth.GenerateToken(req.Address, s.secretKey, s.tokenValidity)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var msg contract.InitMsg
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "malformed message")
		return
	}

	ctx := r.Context()

	s.mu.Lock()
	defer s.mu.Unlock()

	// The host guarantees init runs exactly once per instance.
	initialized, err := s.contract.Initialized(ctx)
	if err != nil {
		s.logger.Error(ctx, err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if initialized {
		writeError(w, http.StatusConflict, "already initialized")
		return
	}

	if err := s.contract.Init(ctx, msg); err != nil {
		if errors.Is(err, common.ErrInvalidConfig) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error(ctx, err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(ctx, "Contract initialized")
	writeJSON(w, http.StatusOK, map[string]string{"status": "initialized"})
}

func (s *Server) handleHandle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	address, ok := callerAddress(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing caller")
		return
	}

	var envelope handleEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		writeError(w, http.StatusBadRequest, "malformed message")
		return
	}
	msg, ok := envelope.message()
	if !ok {
		writeError(w, http.StatusBadRequest, "expected exactly one operation")
		return
	}

	s.mu.Lock()
	env := s.nextEnv(contract.CanonicalAddress(address))
	answer, err := s.contract.Handle(ctx, env, msg)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error(ctx, err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var envelope queryEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		writeError(w, http.StatusBadRequest, "malformed message")
		return
	}
	msg, ok := envelope.message()
	if !ok {
		writeError(w, http.StatusBadRequest, "expected exactly one operation")
		return
	}

	s.mu.Lock()
	answer, err := s.contract.Query(ctx, msg)
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		s.logger.Error(ctx, err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
