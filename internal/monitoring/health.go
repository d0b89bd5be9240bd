package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

// HealthChecker reports daemon liveness: time of the last completed
// scan and any errors it produced.
type HealthChecker struct {
	mu         sync.RWMutex
	lastScan   time.Time
	lastErrors []string
}

// HealthStatus is the JSON body of the health endpoint.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	LastScan  time.Time `json:"last_scan"`
	Uptime    string    `json:"uptime"`
	Errors    []string  `json:"errors,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{}
}

// ScanCompleted records the outcome of a scan run.
func (h *HealthChecker) ScanCompleted(errs []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastScan = time.Now()
	h.lastErrors = errs
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	status := "healthy"
	if len(h.lastErrors) > 0 {
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		LastScan:  h.lastScan,
		Uptime:    time.Since(startTime).String(),
		Errors:    h.lastErrors,
	})
}
