package memgraph

import (
	"math"
	"math/rand"
)

// Point is a node position in the unit square.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutOptions control the spring layout.
type LayoutOptions struct {
	Iterations int   // simulation steps, default 100
	Seed       int64 // RNG seed for the initial placement
}

// DefaultLayoutOptions returns the settings used by the CLI and viewer.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{Iterations: 100, Seed: 42}
}

// SpringLayout computes a force-directed (Fruchterman-Reingold) layout
// and returns positions normalized to [0,1]x[0,1]. The result is
// deterministic for a given seed.
func SpringLayout(g *Graph, opts LayoutOptions) map[string]Point {
	positions := make(map[string]Point, g.NodeCount())
	if g.IsEmpty() {
		return positions
	}
	if opts.Iterations <= 0 {
		opts.Iterations = 100
	}

	nodes := g.Nodes()
	if len(nodes) == 1 {
		positions[nodes[0].Name] = Point{X: 0.5, Y: 0.5}
		return positions
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	n := len(nodes)
	idx := make(map[string]int, n)
	px := make([]float64, n)
	py := make([]float64, n)
	for i, node := range nodes {
		idx[node.Name] = i
		px[i] = rng.Float64()
		py[i] = rng.Float64()
	}

	// Ideal edge length for a unit-area canvas.
	k := math.Sqrt(1.0 / float64(n))
	temp := 0.1

	dispX := make([]float64, n)
	dispY := make([]float64, n)
	edges := g.Edges()

	for iter := 0; iter < opts.Iterations; iter++ {
		for i := range dispX {
			dispX[i], dispY[i] = 0, 0
		}

		// Repulsion between every node pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := px[i] - px[j]
				dy := py[i] - py[j]
				dist := math.Hypot(dx, dy)
				if dist < 1e-9 {
					dist = 1e-9
					dx = 1e-9
				}
				force := k * k / dist
				fx := dx / dist * force
				fy := dy / dist * force
				dispX[i] += fx
				dispY[i] += fy
				dispX[j] -= fx
				dispY[j] -= fy
			}
		}

		// Attraction along edges.
		for _, e := range edges {
			i, j := idx[e.Source], idx[e.Target]
			if i == j {
				continue
			}
			dx := px[i] - px[j]
			dy := py[i] - py[j]
			dist := math.Hypot(dx, dy)
			if dist < 1e-9 {
				continue
			}
			force := dist * dist / k
			fx := dx / dist * force
			fy := dy / dist * force
			dispX[i] -= fx
			dispY[i] -= fy
			dispX[j] += fx
			dispY[j] += fy
		}

		// Apply displacement, capped by the cooling temperature.
		for i := 0; i < n; i++ {
			d := math.Hypot(dispX[i], dispY[i])
			if d < 1e-9 {
				continue
			}
			limited := math.Min(d, temp)
			px[i] += dispX[i] / d * limited
			py[i] += dispY[i] / d * limited
		}
		temp *= 0.95
	}

	normalize(px)
	normalize(py)
	for name, i := range idx {
		positions[name] = Point{X: px[i], Y: py[i]}
	}
	return positions
}

// normalize rescales values into [0,1]. A degenerate axis collapses to
// the midpoint.
func normalize(vals []float64) {
	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span < 1e-9 {
		for i := range vals {
			vals[i] = 0.5
		}
		return
	}
	for i := range vals {
		vals[i] = (vals[i] - min) / span
	}
}
