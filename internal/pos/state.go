package pos

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karwanotmani/bazarpos-backend/internal/catalog"
	"github.com/karwanotmani/bazarpos-backend/internal/ledger"
	"github.com/karwanotmani/bazarpos-backend/pkg/enums"
)

// Keys in the kv store. The cart is deliberately absent: an unsettled sale
// does not survive a restart.
const (
	keyProducts         = "products"
	keyCustomCategories = "customCategories"
	keySalesHistory     = "salesHistory"
)

type productRecord struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Barcode  string          `json:"barcode,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Category string          `json:"category"`
}

type saleLineRecord struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type saleRecord struct {
	ReceiptNumber string           `json:"receiptNumber"`
	Items         []saleLineRecord `json:"items"`
	Total         decimal.Decimal  `json:"total"`
	PaymentMethod string           `json:"paymentMethod"`
	Date          string           `json:"date"`
}

func encodeProducts(products []catalog.Product) (string, error) {
	records := make([]productRecord, 0, len(products))
	for _, product := range products {
		records = append(records, productRecord{
			ID:       product.ID.String(),
			Name:     product.Name,
			Barcode:  product.Barcode,
			Price:    product.Price,
			Quantity: product.Quantity,
			Category: product.Category,
		})
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding products: %w", err)
	}
	return string(raw), nil
}

func decodeProducts(value string) ([]catalog.Product, error) {
	var records []productRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}
	products := make([]catalog.Product, 0, len(records))
	for _, record := range records {
		id, err := uuid.Parse(record.ID)
		if err != nil {
			return nil, fmt.Errorf("decoding product id %q: %w", record.ID, err)
		}
		products = append(products, catalog.Product{
			ID:       id,
			Name:     record.Name,
			Barcode:  record.Barcode,
			Price:    record.Price,
			Quantity: record.Quantity,
			Category: record.Category,
		})
	}
	return products, nil
}

func encodeCategories(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("encoding categories: %w", err)
	}
	return string(raw), nil
}

func decodeCategories(value string) ([]string, error) {
	var names []string
	if err := json.Unmarshal([]byte(value), &names); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}
	return names, nil
}

func encodeSales(sales []ledger.Sale) (string, error) {
	records := make([]saleRecord, 0, len(sales))
	for _, sale := range sales {
		items := make([]saleLineRecord, 0, len(sale.Lines))
		for _, line := range sale.Lines {
			items = append(items, saleLineRecord{
				ProductID: line.ProductID.String(),
				Name:      line.Name,
				Price:     line.Price,
				Quantity:  line.Quantity,
				LineTotal: line.LineTotal,
			})
		}
		records = append(records, saleRecord{
			ReceiptNumber: sale.ReceiptNumber,
			Items:         items,
			Total:         sale.Total,
			PaymentMethod: sale.PaymentMethod.String(),
			Date:          sale.Timestamp.Format(time.RFC3339Nano),
		})
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding sales: %w", err)
	}
	return string(raw), nil
}

func decodeSales(value string) ([]ledger.Sale, error) {
	var records []saleRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, fmt.Errorf("decoding sales: %w", err)
	}
	sales := make([]ledger.Sale, 0, len(records))
	for _, record := range records {
		method, err := enums.ParsePaymentMethod(record.PaymentMethod)
		if err != nil {
			return nil, fmt.Errorf("decoding sale %s: %w", record.ReceiptNumber, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, record.Date)
		if err != nil {
			return nil, fmt.Errorf("decoding sale %s date: %w", record.ReceiptNumber, err)
		}
		lines := make([]ledger.Line, 0, len(record.Items))
		for _, item := range record.Items {
			id, err := uuid.Parse(item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("decoding sale %s line id %q: %w", record.ReceiptNumber, item.ProductID, err)
			}
			lines = append(lines, ledger.Line{
				ProductID: id,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				LineTotal: item.LineTotal,
			})
		}
		sales = append(sales, ledger.Sale{
			ReceiptNumber: record.ReceiptNumber,
			Lines:         lines,
			Total:         record.Total,
			PaymentMethod: method,
			Timestamp:     ts,
		})
	}
	return sales, nil
}
