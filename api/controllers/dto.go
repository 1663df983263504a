package controllers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/karwanotmani/bazarpos-backend/internal/cart"
	"github.com/karwanotmani/bazarpos-backend/internal/catalog"
	"github.com/karwanotmani/bazarpos-backend/internal/ledger"
	"github.com/karwanotmani/bazarpos-backend/pkg/enums"
)

type productResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Barcode    string          `json:"barcode,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Category   string          `json:"category"`
	StockLevel string          `json:"stockLevel"`
}

func newProductResponse(product catalog.Product, lowStockThreshold int) productResponse {
	return productResponse{
		ID:         product.ID.String(),
		Name:       product.Name,
		Barcode:    product.Barcode,
		Price:      product.Price,
		Quantity:   product.Quantity,
		Category:   product.Category,
		StockLevel: enums.StockLevelFor(product.Quantity, lowStockThreshold).String(),
	}
}

func newProductListResponse(products []catalog.Product, lowStockThreshold int) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, newProductResponse(product, lowStockThreshold))
	}
	return out
}

type cartLineResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type saleLineResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type saleResponse struct {
	ReceiptNumber string             `json:"receiptNumber"`
	Items         []saleLineResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	Date          time.Time          `json:"date"`
}

func newSaleResponse(sale ledger.Sale) saleResponse {
	items := make([]saleLineResponse, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		items = append(items, saleLineResponse{
			ProductID: line.ProductID.String(),
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
		})
	}
	return saleResponse{
		ReceiptNumber: sale.ReceiptNumber,
		Items:         items,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod.String(),
		Date:          sale.Timestamp,
	}
}

func newSaleListResponse(sales []ledger.Sale) []saleResponse {
	out := make([]saleResponse, 0, len(sales))
	for _, sale := range sales {
		out = append(out, newSaleResponse(sale))
	}
	return out
}

func newCartResponse(lines []cart.Line, total decimal.Decimal) cartResponse {
	items := make([]cartLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, cartLineResponse{
			ProductID: line.ProductID.String(),
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
		})
	}
	return cartResponse{Items: items, Total: total}
}
