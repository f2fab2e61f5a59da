package http

import (
	"net/http"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/ccimar11/riskmap/pkg/utils/errutil"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

type addObjectRequest struct {
	NR          int    `json:"nr"`
	Description string `json:"descricao"`
}

// selectionRequest chooses an option; an empty option clears the selection
type selectionRequest struct {
	Category  string `json:"categoria"`
	Criterion string `json:"criterio"`
	Option    string `json:"opcao"`
}

func (s *Server) listObjects(w http.ResponseWriter, r *http.Request) {
	objs, err := s.uc.Object.List(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toObjectsJSON(objs))
}

func (s *Server) addObject(w http.ResponseWriter, r *http.Request) {
	var req addObjectRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Description == "" {
		errutil.HandleHTTPStatus(r.Context(), w, goerr.New("descricao is required"), http.StatusBadRequest)
		return
	}

	obj, err := s.uc.Object.Add(r.Context(), req.NR, req.Description)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toObjectJSON(obj))
}

func (s *Server) getObject(w http.ResponseWriter, r *http.Request) {
	obj, err := s.uc.Object.GetByID(r.Context(), types.ObjectID(chi.URLParam(r, "id")))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toObjectJSON(obj))
}

func (s *Server) putSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if !readJSON(w, r, &req) {
		return
	}
	cat, err := types.ParseCategory(req.Category)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(model.ErrInvalidCategory, err.Error()))
		return
	}

	ctx := r.Context()
	current, err := s.uc.Object.GetByID(ctx, types.ObjectID(chi.URLParam(r, "id")))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	var obj *model.AuditObject
	if req.Option == "" {
		obj, err = s.uc.Object.ClearSelection(ctx, current.Description, cat, req.Criterion)
	} else {
		obj, err = s.uc.Object.Select(ctx, current.Description, cat, req.Criterion, req.Option)
	}
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toObjectJSON(obj))
}
