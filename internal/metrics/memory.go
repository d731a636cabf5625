package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by the application
	HeapSys      uint64 // bytes obtained from the OS for the heap
	Sys          uint64 // total bytes obtained from the OS
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32 // completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct {
	read func(*runtime.MemStats)
}

// NewMemoryCollector creates a collector backed by runtime.ReadMemStats.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{read: runtime.ReadMemStats}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	mc.read(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// AllocatedSince returns the bytes allocated between two snapshots.
func (s MemorySnapshot) AllocatedSince(before MemorySnapshot) uint64 {
	if s.TotalAlloc < before.TotalAlloc {
		return 0
	}
	return s.TotalAlloc - before.TotalAlloc
}
