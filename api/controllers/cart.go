package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karwanotmani/bazarpos-backend/api/responses"
	"github.com/karwanotmani/bazarpos-backend/api/validators"
	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
}

type changeCartQuantityRequest struct {
	Delta int `json:"delta"`
}

// CartGet returns the active cart in display order.
func CartGet(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines, total := session.Cart(r.Context())
		responses.WriteSuccess(w, newCartResponse(lines, total))
	}
}

// CartAddItem adds one unit of a product, merging into an existing line.
func CartAddItem(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathUUID(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := session.AddToCart(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lines, total := session.Cart(r.Context())
		responses.WriteSuccess(w, newCartResponse(lines, total))
	}
}

// CartChangeQuantity nudges a line's quantity by a signed delta.
func CartChangeQuantity(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload changeCartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := session.ChangeCartQuantity(r.Context(), id, payload.Delta); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lines, total := session.Cart(r.Context())
		responses.WriteSuccess(w, newCartResponse(lines, total))
	}
}

// CartRemoveItem drops a line entirely.
func CartRemoveItem(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		session.RemoveFromCart(r.Context(), id)
		lines, total := session.Cart(r.Context())
		responses.WriteSuccess(w, newCartResponse(lines, total))
	}
}

// CartClear empties the cart without touching stock.
func CartClear(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session.ClearCart(r.Context())
		lines, total := session.Cart(r.Context())
		responses.WriteSuccess(w, newCartResponse(lines, total))
	}
}
