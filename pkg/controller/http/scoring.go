package http

import (
	"net/http"

	"github.com/ccimar11/riskmap/pkg/utils/errutil"
	"github.com/go-chi/chi/v5"
)

func (s *Server) getWeights(w http.ResponseWriter, r *http.Request) {
	weights, err := s.uc.Scoring.Weights(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toWeightsJSON(weights))
}

func (s *Server) putWeights(w http.ResponseWriter, r *http.Request) {
	var req weightsJSON
	if !readJSON(w, r, &req) {
		return
	}

	if err := s.uc.Scoring.UpdateWeights(r.Context(), req.toModel()); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, req)
}

func (s *Server) getTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := s.uc.Scoring.Tiers(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toTiersJSON(tiers))
}

// putTiers stores the tiers after clamping and returns what was stored
func (s *Server) putTiers(w http.ResponseWriter, r *http.Request) {
	var req []tierJSON
	if !readJSON(w, r, &req) {
		return
	}

	tiers, err := s.uc.Scoring.UpdateTiers(r.Context(), fromTiersJSON(req))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toTiersJSON(tiers))
}

func (s *Server) applyPreset(w http.ResponseWriter, r *http.Request) {
	tiers, err := s.uc.Scoring.ApplyPreset(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toTiersJSON(tiers))
}

func (s *Server) recompute(w http.ResponseWriter, r *http.Request) {
	objs, err := s.uc.Scoring.RecomputeAll(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toObjectsJSON(objs))
}
