package skintone

import (
	"math"
	"math/rand/v2"
)

type rgb [3]float64

func (c rgb) brightness() float64 { return (c[0] + c[1] + c[2]) / 3 }

func dist2(a, b rgb) float64 {
	d0, d1, d2 := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return d0*d0 + d1*d1 + d2*d2
}

// kmeans clusters points into k centres using k-means++ seeding from a fixed seed,
// so identical input always yields identical centres.
func kmeans(points []rgb, k, maxIter int, seed uint64) []rgb {
	if len(points) == 0 || k <= 0 {
		return nil
	}
	if k > len(points) {
		k = len(points)
	}
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	centres := make([]rgb, 0, k)
	centres = append(centres, points[rnd.IntN(len(points))])
	d := make([]float64, len(points))
	for len(centres) < k {
		var sum float64
		for i, p := range points {
			d[i] = math.Inf(1)
			for _, c := range centres {
				d[i] = math.Min(d[i], dist2(p, c))
			}
			sum += d[i]
		}
		if sum == 0 {
			// all remaining points coincide with a centre
			centres = append(centres, centres[len(centres)-1])
			continue
		}
		target := rnd.Float64() * sum
		next := len(points) - 1
		for i := range points {
			target -= d[i]
			if target <= 0 {
				next = i
				break
			}
		}
		centres = append(centres, points[next])
	}

	assign := make([]int, len(points))
	for iter := 0; iter < maxIter; iter++ {
		changed := iter == 0
		for i, p := range points {
			best, bestD := 0, math.Inf(1)
			for j, c := range centres {
				if dd := dist2(p, c); dd < bestD {
					best, bestD = j, dd
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		sums := make([]rgb, k)
		counts := make([]int, k)
		for i, p := range points {
			j := assign[i]
			sums[j][0] += p[0]
			sums[j][1] += p[1]
			sums[j][2] += p[2]
			counts[j]++
		}
		for j := range centres {
			if counts[j] == 0 {
				continue
			}
			n := float64(counts[j])
			centres[j] = rgb{sums[j][0] / n, sums[j][1] / n, sums[j][2] / n}
		}
	}
	return centres
}
