package enums

// StockLevel is the badge the UI renders for a product's remaining quantity.
type StockLevel string

const (
	StockLevelOut StockLevel = "out_of_stock"
	StockLevelLow StockLevel = "low_stock"
	StockLevelIn  StockLevel = "in_stock"
)

// String implements fmt.Stringer.
func (s StockLevel) String() string {
	return string(s)
}

// StockLevelFor classifies a quantity against the low-stock threshold.
func StockLevelFor(quantity, lowStockThreshold int) StockLevel {
	switch {
	case quantity <= 0:
		return StockLevelOut
	case quantity < lowStockThreshold:
		return StockLevelLow
	default:
		return StockLevelIn
	}
}
