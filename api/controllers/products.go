package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/karwanotmani/bazarpos-backend/api/responses"
	"github.com/karwanotmani/bazarpos-backend/api/validators"
	"github.com/karwanotmani/bazarpos-backend/internal/catalog"
	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
)

type createProductRequest struct {
	Name     string          `json:"name" validate:"required"`
	Barcode  string          `json:"barcode"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"min=0"`
	Category string          `json:"category" validate:"required"`
}

type updateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Barcode  *string          `json:"barcode,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Quantity *int             `json:"quantity,omitempty"`
	Category *string          `json:"category,omitempty"`
}

// ProductList serves the catalog, optionally filtered by category.
func ProductList(session *pos.Session, lowStockThreshold int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := session.Products(r.Context(), r.URL.Query().Get("category"))
		responses.WriteSuccess(w, newProductListResponse(products, lowStockThreshold))
	}
}

// ProductCreate adds a product to the catalog.
func ProductCreate(session *pos.Session, lowStockThreshold int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := session.AddProduct(r.Context(), catalog.AddProductInput{
			Name:     payload.Name,
			Barcode:  payload.Barcode,
			Price:    payload.Price,
			Quantity: payload.Quantity,
			Category: payload.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newProductResponse(product, lowStockThreshold))
	}
}

// ProductUpdate edits a product in place.
func ProductUpdate(session *pos.Session, lowStockThreshold int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := session.UpdateProduct(r.Context(), id, catalog.UpdateProductInput{
			Name:     payload.Name,
			Barcode:  payload.Barcode,
			Price:    payload.Price,
			Quantity: payload.Quantity,
			Category: payload.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductResponse(product, lowStockThreshold))
	}
}

// ProductDelete removes a product from the catalog.
func ProductDelete(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := session.RemoveProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": id.String()})
	}
}

// ProductLookup serves the scan/search flow: barcode or name fragment.
func ProductLookup(session *pos.Session, lowStockThreshold int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "q is required"))
			return
		}
		product, err := session.LookupProduct(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductResponse(product, lowStockThreshold))
	}
}
