package http

import (
	"net/http"
	"strconv"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/ccimar11/riskmap/pkg/utils/errutil"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

func categoryParam(r *http.Request) (types.Category, error) {
	raw := chi.URLParam(r, "category")
	cat, err := types.ParseCategory(raw)
	if err != nil {
		return "", goerr.Wrap(model.ErrInvalidCategory, err.Error(), goerr.V(model.CategoryKey, raw))
	}
	return cat, nil
}

func indexParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerr.Wrap(model.ErrInvalidIndex, "index must be an integer", goerr.V(model.IndexKey, raw))
	}
	return index, nil
}

func (s *Server) listCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.uc.Criteria.Catalog(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	resp := make(map[types.Category][]criterionJSON, len(catalog))
	for _, cat := range types.AllCategories() {
		resp[cat] = toCriteriaJSON(catalog.Criteria(cat))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// listCriteria answers an unknown category with an empty list
func (s *Server) listCriteria(w http.ResponseWriter, r *http.Request) {
	cat, err := categoryParam(r)
	if err != nil {
		writeJSON(w, r, http.StatusOK, []criterionJSON{})
		return
	}

	criteria, err := s.uc.Criteria.ListCriteria(r.Context(), cat)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCriteriaJSON(criteria))
}

func (s *Server) addCriterion(w http.ResponseWriter, r *http.Request) {
	cat, err := categoryParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	var req criterionJSON
	if !readJSON(w, r, &req) {
		return
	}

	if err := s.uc.Criteria.AddCriterion(r.Context(), cat, req.toModel()); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toCriterionJSON(req.toModel()))
}

func (s *Server) updateCriterion(w http.ResponseWriter, r *http.Request) {
	cat, err := categoryParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	index, err := indexParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	var req criterionJSON
	if !readJSON(w, r, &req) {
		return
	}

	if err := s.uc.Criteria.UpdateCriterion(r.Context(), cat, index, req.toModel()); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCriterionJSON(req.toModel()))
}

func (s *Server) removeCriterion(w http.ResponseWriter, r *http.Request) {
	cat, err := categoryParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	index, err := indexParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	removed, err := s.uc.Criteria.RemoveCriterion(r.Context(), cat, index)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCriterionJSON(*removed))
}
