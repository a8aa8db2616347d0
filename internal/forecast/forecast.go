// Package forecast estimates short-term medicine demand from sale history.
//
// The model is an ordinary least-squares fit per medicine: x is days since
// the medicine's first sale, y is the quantity sold. The prediction is the
// mean of the fitted line over the next 7 days, floored at zero. Confidence
// is the fit's R², capped at 0.95. Medicines with fewer than 3 sale points
// are omitted.
package forecast

import (
	"math"
	"sort"
	"time"
)

// SalePoint is one historical observation.
type SalePoint struct {
	MedicineName string
	SaleDate     time.Time
	Quantity     int
}

// Prediction is one per-medicine demand estimate.
type Prediction struct {
	MedicineName    string
	PredictedDemand float64
	Confidence      float64
	Recommendation  string // "reorder" | "sufficient"
}

const (
	horizonDays      = 7
	minPoints        = 3
	confidenceCap    = 0.95
	reorderThreshold = 10
)

// PredictDemand fits each medicine's series and returns predictions sorted by
// predicted demand, descending.
func PredictDemand(sales []SalePoint) []Prediction {
	byMedicine := make(map[string][]SalePoint)
	var order []string
	for _, s := range sales {
		if _, seen := byMedicine[s.MedicineName]; !seen {
			order = append(order, s.MedicineName)
		}
		byMedicine[s.MedicineName] = append(byMedicine[s.MedicineName], s)
	}

	var predictions []Prediction
	for _, name := range order {
		points := byMedicine[name]
		if len(points) < minPoints {
			continue
		}
		sort.Slice(points, func(i, j int) bool { return points[i].SaleDate.Before(points[j].SaleDate) })

		first := points[0].SaleDate
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for i, p := range points {
			xs[i] = math.Floor(p.SaleDate.Sub(first).Hours() / 24)
			ys[i] = float64(p.Quantity)
		}

		slope, intercept := fitLine(xs, ys)
		r2 := rSquared(xs, ys, slope, intercept)

		lastDay := xs[len(xs)-1]
		sum := 0.0
		for d := 1; d <= horizonDays; d++ {
			sum += slope*(lastDay+float64(d)) + intercept
		}
		demand := math.Max(0, sum/horizonDays)

		rec := "sufficient"
		if demand > reorderThreshold {
			rec = "reorder"
		}
		predictions = append(predictions, Prediction{
			MedicineName:    name,
			PredictedDemand: round2(demand),
			Confidence:      round2(math.Min(confidenceCap, r2)),
			Recommendation:  rec,
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].PredictedDemand > predictions[j].PredictedDemand
	})
	return predictions
}

// fitLine returns the least-squares slope and intercept. A series with zero
// x-variance (all sales on the same day) degrades to a flat line at the mean.
func fitLine(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var num, den float64
	for i := range xs {
		num += (xs[i] - meanX) * (ys[i] - meanY)
		den += (xs[i] - meanX) * (xs[i] - meanX)
	}
	if den == 0 {
		return 0, meanY
	}
	return num / den, meanY - (num/den)*meanX
}

func rSquared(xs, ys []float64, slope, intercept float64) float64 {
	n := float64(len(ys))
	var meanY float64
	for _, y := range ys {
		meanY += y
	}
	meanY /= n

	var ssRes, ssTot float64
	for i := range ys {
		pred := slope*xs[i] + intercept
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
