package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/karwanotmani/bazarpos-backend/api/responses"
	"github.com/karwanotmani/bazarpos-backend/internal/ledger"
	"github.com/karwanotmani/bazarpos-backend/internal/pos"
	pkgerrors "github.com/karwanotmani/bazarpos-backend/pkg/errors"
	"github.com/karwanotmani/bazarpos-backend/pkg/logger"
	"github.com/karwanotmani/bazarpos-backend/pkg/pagination"
	"github.com/karwanotmani/bazarpos-backend/pkg/receipt"
)

type salePageResponse struct {
	Items      []saleResponse `json:"items"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

// SaleList returns the ledger newest first, paged by an opaque cursor.
func SaleList(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}

		page, next := pageSales(session.Sales(r.Context()), pagination.NormalizeLimit(params.Limit), cursor)
		out := salePageResponse{Items: newSaleListResponse(page)}
		if next != nil {
			out.NextCursor = pagination.EncodeCursor(*next)
		}
		responses.WriteSuccess(w, out)
	}
}

func paginationParams(r *http.Request) (pagination.Params, error) {
	params := pagination.Params{Cursor: r.URL.Query().Get("cursor")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit")
		}
		params.Limit = limit
	}
	return params, nil
}

// pageSales walks the ledger from the most recent sale backwards, skipping
// everything at or before the cursor position.
func pageSales(sales []ledger.Sale, limit int, cursor *pagination.Cursor) ([]ledger.Sale, *pagination.Cursor) {
	page := make([]ledger.Sale, 0, limit)
	skipping := cursor != nil
	for i := len(sales) - 1; i >= 0; i-- {
		sale := sales[i]
		if skipping {
			if sale.ReceiptNumber == cursor.ReceiptNumber {
				skipping = false
			}
			continue
		}
		page = append(page, sale)
		if len(page) == limit {
			if i > 0 {
				last := page[len(page)-1]
				return page, &pagination.Cursor{Timestamp: last.Timestamp, ReceiptNumber: last.ReceiptNumber}
			}
			break
		}
	}
	return page, nil
}

// SaleGet fetches one settled sale by receipt number.
func SaleGet(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number := chi.URLParam(r, "receiptNumber")
		if !receipt.Valid(number) {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "malformed receipt number"))
			return
		}
		sale, err := session.FindSale(r.Context(), number)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSaleResponse(sale))
	}
}

// SaleClear wipes the sales history.
func SaleClear(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := session.ClearSales(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, salePageResponse{Items: []saleResponse{}})
	}
}

// SaleNew abandons the in-flight cart so the cashier can start fresh.
func SaleNew(session *pos.Session, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session.StartNewSale(r.Context())
		lines, total := session.Cart(r.Context())
		responses.WriteSuccess(w, newCartResponse(lines, total))
	}
}
