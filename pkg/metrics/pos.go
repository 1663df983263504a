package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// POSMetrics records till activity for the /metrics endpoint.
type POSMetrics struct {
	checkouts  prometheus.Counter
	salesTotal prometheus.Counter
	itemsSold  prometheus.Counter
}

// NewPOSMetrics registers the till metrics on the provided registerer.
func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	if reg == nil {
		return &POSMetrics{}
	}
	checkouts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_checkouts_total",
		Help: "Completed checkouts.",
	})
	salesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_amount_total",
		Help: "Sum of sale totals in catalog currency units.",
	})
	itemsSold := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_items_sold_total",
		Help: "Units sold across all checkouts.",
	})
	reg.MustRegister(checkouts, salesTotal, itemsSold)
	return &POSMetrics{
		checkouts:  checkouts,
		salesTotal: salesTotal,
		itemsSold:  itemsSold,
	}
}

// ObserveCheckout records one settled sale.
func (m *POSMetrics) ObserveCheckout(total float64, items int) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.Inc()
	m.salesTotal.Add(total)
	m.itemsSold.Add(float64(items))
}
