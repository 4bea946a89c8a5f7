// Package performance reports runtime and theme statistics.
package performance

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// Metrics holds performance and runtime statistics
type Metrics struct {
	// Go runtime
	HeapAlloc     uint64 `json:"heapAlloc"`     // Bytes allocated and in use
	HeapSys       uint64 `json:"heapSys"`       // Bytes obtained from system
	HeapInuse     uint64 `json:"heapInuse"`     // Bytes in non-idle spans
	Goroutines    int    `json:"goroutines"`    // Number of goroutines
	NumGC         uint32 `json:"numGC"`         // Number of completed GC cycles
	LastGCPauseNs uint64 `json:"lastGCPauseNs"` // Duration of last GC pause in nanoseconds
	Sys           uint64 `json:"sys"`           // Total bytes obtained from system

	// Host memory, zero when unavailable
	SystemTotal     uint64  `json:"systemTotal"`
	SystemAvailable uint64  `json:"systemAvailable"`
	SystemUsedPct   float64 `json:"systemUsedPct"`

	// Theme
	Selection      types.Selection      `json:"selection"`
	EffectiveTheme types.EffectiveTheme `json:"effectiveTheme"`
	Theme          types.ThemeStats     `json:"theme"`

	UptimeSeconds int64  `json:"uptimeSeconds"`
	Timestamp     string `json:"timestamp"` // When metrics were collected
}

// ThemeSource is the part of the theme manager the service reads.
type ThemeSource interface {
	State() types.ThemeState
	Stats() types.ThemeStats
}

// Service provides performance metrics collection
type Service struct {
	state  *core.AppState
	themes ThemeSource
}

// NewService creates a new performance metrics service. themes may be nil
// until the manager exists.
func NewService(state *core.AppState, themes ThemeSource) *Service {
	return &Service{state: state, themes: themes}
}

// GetMetrics returns current performance metrics
func (s *Service) GetMetrics() *Metrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	var lastGCPause uint64
	if memStats.NumGC > 0 {
		// PauseNs is a circular buffer of recent GC pause times
		lastGCPause = memStats.PauseNs[(memStats.NumGC+255)%256]
	}

	m := &Metrics{
		HeapAlloc:     memStats.HeapAlloc,
		HeapSys:       memStats.HeapSys,
		HeapInuse:     memStats.HeapInuse,
		Goroutines:    runtime.NumGoroutine(),
		NumGC:         memStats.NumGC,
		LastGCPauseNs: lastGCPause,
		Sys:           memStats.Sys,
		Timestamp:     time.Now().Format(time.RFC3339),
	}
	if v, err := mem.VirtualMemory(); err == nil {
		m.SystemTotal = v.Total
		m.SystemAvailable = v.Available
		m.SystemUsedPct = v.UsedPercent
	}
	if s.state != nil {
		m.UptimeSeconds = int64(s.state.Uptime().Seconds())
	}
	if s.themes != nil {
		st := s.themes.State()
		m.Selection = st.Selection
		m.EffectiveTheme = st.EffectiveTheme
		m.Theme = s.themes.Stats()
	}
	return m
}
