package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricsCollector receives ledger operation metrics.
type MetricsCollector interface {
	RecordTransaction(txType string, amount decimal.Decimal)
	RecordError(operation, code string)
	RecordOperationDuration(operation string, d time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransaction(string, decimal.Decimal)     {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}
func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
