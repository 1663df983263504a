package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karwanotmani/bazarpos-backend/api/responses"
	"github.com/karwanotmani/bazarpos-backend/api/validators"
	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryList returns built-in plus custom categories, in order.
func CategoryList(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, session.Categories(r.Context()))
	}
}

// CategoryCreate appends a custom category.
func CategoryCreate(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := session.AddCategory(r.Context(), payload.Name); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"name": payload.Name})
	}
}

// CategoryDelete removes an unreferenced custom category.
func CategoryDelete(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category name is required"))
			return
		}
		if err := session.RemoveCategory(r.Context(), name); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"name": name})
	}
}
