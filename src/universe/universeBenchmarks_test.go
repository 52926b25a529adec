package universe

import (
	"context"
	"testing"
)

var (
	testTemplate = [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}
)

const (
	rows = 200
	cols = 200
)

func newBenchUniverse(b *testing.B, toroidal bool) *Universe {
	u, err := New(rows, cols, toroidal)
	if err != nil {
		b.Fatal(err)
	}
	for _, c := range testTemplate {
		_ = u.Set(c[0], c[1], true)
	}
	return u
}

func Benchmark_Advance(b *testing.B) {
	for _, toroidal := range []bool{false, true} {
		name := "bounded"
		if toroidal {
			name = "toroidal"
		}
		b.Run(name, func(b *testing.B) {
			cur := newBenchUniverse(b, toroidal)
			next := newBenchUniverse(b, toroidal)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = Advance(cur, next)
				cur, next = next, cur
			}
		})
	}
}

func Benchmark_Simulation(b *testing.B) {
	o := DefaultOptions
	o.Interval = 0
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s, err := NewSimulation(newBenchUniverse(b, true), o)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		_ = s.Run(context.Background())
		s.Close()
	}
}
