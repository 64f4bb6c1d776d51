package scenario

import "github.com/ewoodward/gridshift/core/model"

// Curve is a 24-hour demand series in kWh per hour.
type Curve [model.HoursPerDay]float64

// Total returns the energy over the whole day.
func (c Curve) Total() float64 {
	var sum float64
	for _, v := range c {
		sum += v
	}
	return sum
}

// Add returns the hour-wise sum of two curves.
func (c Curve) Add(o Curve) Curve {
	var out Curve
	for h := range c {
		out[h] = c[h] + o[h]
	}
	return out
}
