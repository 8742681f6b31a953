package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestOrderMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewOrderMetrics(reg)

	metrics.IncOrdersCreated()
	metrics.IncOrdersCreated()
	metrics.IncPricingFailure("unknown_addon")
	metrics.IncStockClamp("Steaks")
	metrics.ObserveOrderTotal(4400)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	created := findMetricFamily(mfs, "orders_created_total")
	if created == nil {
		t.Fatalf("orders_created_total not found")
	}
	if got := created.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected orders_created_total=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pricing_failures_total", "reason", "unknown_addon"); err != nil {
		t.Fatalf("fetch pricing failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected pricing_failures_total=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "stock_clamp_total", "item", "Steaks"); err != nil {
		t.Fatalf("fetch clamp: %v", err)
	} else if got != 1 {
		t.Fatalf("expected stock_clamp_total=1, got %f", got)
	}

	totals := findMetricFamily(mfs, "order_total_pence")
	if totals == nil {
		t.Fatalf("order_total_pence not found")
	}
	if got := totals.GetMetric()[0].GetHistogram().GetSampleSum(); got != 4400 {
		t.Fatalf("expected histogram sum 4400, got %f", got)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var metrics *OrderMetrics
	metrics.IncOrdersCreated()
	metrics.IncPricingFailure("x")
	metrics.IncStockClamp("y")
	metrics.ObserveOrderTotal(1)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
