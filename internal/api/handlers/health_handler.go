package handlers

import (
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/skyops/aeroops-be/internal/store"
)

// HealthHandler reports store reachability and a host resource snapshot for
// the dashboard's system-status panel.
type HealthHandler struct {
	store store.RecordStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(st store.RecordStore) *HealthHandler {
	return &HealthHandler{store: st}
}

// Get handles the health check request.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	storeStatus := "ok"
	code := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		status = "degraded"
		storeStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	var cpuPercent float64
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		cpuPercent = percents[0]
	}

	var memPercent float64
	if vm, err := mem.VirtualMemory(); err == nil {
		memPercent = vm.UsedPercent
	}

	respondJSON(w, code, map[string]any{
		"status": status,
		"store":  storeStatus,
		"host": map[string]float64{
			"cpuPercent": cpuPercent,
			"memPercent": memPercent,
		},
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}
