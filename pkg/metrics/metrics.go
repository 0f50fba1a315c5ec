package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// Metrics exposes a tiny in-memory counter set for the description service.
type Metrics struct {
	consumed  atomic.Int64
	skipped   atomic.Int64
	generated atomic.Int64
	failed    atomic.Int64
}

// New returns a zeroed Metrics collector.
func New() *Metrics {
	return &Metrics{}
}

func (m *Metrics) IncConsumed()  { m.consumed.Add(1) }
func (m *Metrics) IncSkipped()   { m.skipped.Add(1) }
func (m *Metrics) IncGenerated() { m.generated.Add(1) }
func (m *Metrics) IncFailed()    { m.failed.Add(1) }

// Handler exposes the counters as a small JSON document.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "consumed": ` + itoa(m.consumed.Load()) + `,
  "skipped": ` + itoa(m.skipped.Load()) + `,
  "generated": ` + itoa(m.generated.Load()) + `,
  "failed": ` + itoa(m.failed.Load()) + `
}`))
	})
}

func itoa(v int64) string {
	return fmt.Sprintf("%d", v)
}
