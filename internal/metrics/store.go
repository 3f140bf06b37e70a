package metrics

import (
	"time"
)

// RecordStoreOperation records the duration and outcome of a store call.
func (m *Metrics) RecordStoreOperation(operation string, duration time.Duration, err error) {
	m.safeExecute("RecordStoreOperation", func() {
		m.StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
		if err != nil {
			m.StoreOperationErrors.WithLabelValues(operation).Inc()
		}
	})
}

// IncrementMutation counts a successful create, update or delete.
func (m *Metrics) IncrementMutation(operation string) {
	m.safeExecute("IncrementMutation", func() {
		m.EquipmentMutationsTotal.WithLabelValues(operation).Inc()
	})
}

// SetEquipmentTotal sets the record count gauge
func (m *Metrics) SetEquipmentTotal(count int) {
	m.safeExecute("SetEquipmentTotal", func() {
		m.EquipmentTotal.Set(float64(count))
	})
}
