package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records counters for the pricing and stock pipeline.
type OrderMetrics struct {
	ordersCreated   prometheus.Counter
	pricingFailures *prometheus.CounterVec
	stockClamps     *prometheus.CounterVec
	orderTotalPence prometheus.Histogram
}

// NewOrderMetrics registers the order pipeline metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders accepted and persisted.",
	})
	pricingFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_failures_total",
		Help: "Order pricing rejections by reason.",
	}, []string{"reason"})
	stockClamps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_clamp_total",
		Help: "Stock deductions clamped at zero, by stock item.",
	}, []string{"item"})
	orderTotalPence := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_total_pence",
		Help:    "Distribution of order totals in pence.",
		Buckets: []float64{500, 1000, 2000, 3000, 5000, 8000, 12000},
	})
	reg.MustRegister(ordersCreated, pricingFailures, stockClamps, orderTotalPence)
	return &OrderMetrics{
		ordersCreated:   ordersCreated,
		pricingFailures: pricingFailures,
		stockClamps:     stockClamps,
		orderTotalPence: orderTotalPence,
	}
}

// IncOrdersCreated increments the accepted-order counter.
func (m *OrderMetrics) IncOrdersCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

// IncPricingFailure increments the pricing rejection counter for the reason.
func (m *OrderMetrics) IncPricingFailure(reason string) {
	if m == nil || m.pricingFailures == nil {
		return
	}
	m.pricingFailures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncStockClamp increments the clamp counter for the named stock item.
func (m *OrderMetrics) IncStockClamp(item string) {
	if m == nil || m.stockClamps == nil {
		return
	}
	m.stockClamps.WithLabelValues(normalizeLabel(item)).Inc()
}

// ObserveOrderTotal records the total of an accepted order.
func (m *OrderMetrics) ObserveOrderTotal(pence int64) {
	if m == nil || m.orderTotalPence == nil {
		return
	}
	m.orderTotalPence.Observe(float64(pence))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
