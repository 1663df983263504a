package controllers

import (
	"net/http"

	"github.com/karwanotmani/bazarpos-backend/api/responses"
	"github.com/karwanotmani/bazarpos-backend/api/validators"
	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	"github.com/karwanotmani/bazarpos-backend/pkg/enums"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
)

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// Checkout settles the cart into a sale and returns the receipt.
func Checkout(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported payment method"))
			return
		}
		sale, err := session.Checkout(r.Context(), method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newSaleResponse(sale))
	}
}
