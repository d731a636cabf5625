// Package sysmon samples host-wide CPU and memory usage for the viewer's
// stats line.
package sysmon

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	// Valid is false when neither reading could be taken.
	Valid bool
}

// Sampler reads host statistics through gopsutil.
type Sampler struct {
	cpuPercent    func(interval time.Duration, perCPU bool) ([]float64, error)
	virtualMemory func() (*mem.VirtualMemoryStat, error)
}

// NewSampler returns a Sampler backed by the host.
func NewSampler() *Sampler {
	return &Sampler{cpuPercent: cpu.Percent, virtualMemory: mem.VirtualMemory}
}

// Sample collects one snapshot. CPU uses interval 0, the usage since the
// previous call. Readings that fail are left at zero.
func (s *Sampler) Sample() Stats {
	var st Stats
	if pcts, err := s.cpuPercent(0, false); err == nil && len(pcts) > 0 {
		st.CPUPercent = clampPercent(pcts[0])
		st.Valid = true
	}
	if vm, err := s.virtualMemory(); err == nil && vm != nil {
		st.MemPercent = clampPercent(vm.UsedPercent)
		st.Valid = true
	}
	return st
}

func clampPercent(v float64) float64 {
	return max(0, min(100, v))
}
