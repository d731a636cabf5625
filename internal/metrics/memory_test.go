package metrics

import (
	"runtime"
	"testing"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemoryCollector_Delta(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()
	buf := make([]byte, 1<<20)
	runtime.KeepAlive(buf)
	after := mc.Snapshot()

	if after.Sys < before.Sys {
		t.Error("Sys should not decrease between snapshots")
	}
	if after.AllocatedSince(before) == 0 {
		t.Error("allocating 1 MiB should increase TotalAlloc")
	}
}

func TestMemorySnapshot_AllocatedSince(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		before, after uint64
		want          uint64
	}{
		{"growth", 100, 350, 250},
		{"unchanged", 100, 100, 0},
		{"reversed", 350, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MemorySnapshot{TotalAlloc: tt.after}.AllocatedSince(MemorySnapshot{TotalAlloc: tt.before})
			if got != tt.want {
				t.Errorf("AllocatedSince = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMemoryCollector_CustomReader(t *testing.T) {
	t.Parallel()
	mc := &MemoryCollector{read: func(m *runtime.MemStats) {
		m.HeapAlloc = 1
		m.NumGC = 7
		m.HeapObjects = 3
	}}
	snap := mc.Snapshot()
	if snap.HeapAlloc != 1 || snap.NumGC != 7 || snap.HeapObjects != 3 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}
