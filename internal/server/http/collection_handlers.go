package httpserver

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/model"
)

// collectionRoutes mounts the same verb set for cart and wishlist.
// Collections work anonymously too, mirroring the storefront where
// marking items never requires a sign-in.
func (s *Server) collectionRoutes(kind model.CollectionKind) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", s.handleCollectionList(kind))
		r.Delete("/", s.handleCollectionClear(kind))
		r.Get("/{itemID}", s.handleCollectionContains(kind))
		r.Put("/{itemID}", s.handleCollectionAdd(kind))
		r.Delete("/{itemID}", s.handleCollectionRemove(kind))
	}
}

func itemIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.FromString(chi.URLParam(r, "itemID"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad item id", errs.ErrValidation)
	}
	return id, nil
}

func (s *Server) handleCollectionList(kind model.CollectionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.collections.List(r.Context(), CurrentUserID(r.Context()), kind)
		if err != nil {
			writeError(w, err)
			return
		}
		if items == nil {
			items = []model.Item{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (s *Server) handleCollectionAdd(kind model.CollectionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.collections.Add(r.Context(), CurrentUserID(r.Context()), kind, id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleCollectionRemove(kind model.CollectionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.collections.Remove(r.Context(), CurrentUserID(r.Context()), kind, id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleCollectionContains(kind model.CollectionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDParam(r)
		if err != nil {
			writeError(w, err)
			return
		}
		ok, err := s.collections.Contains(r.Context(), CurrentUserID(r.Context()), kind, id)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleCollectionClear(kind model.CollectionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.collections.Clear(r.Context(), CurrentUserID(r.Context()), kind); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
