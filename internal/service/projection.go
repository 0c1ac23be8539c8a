package service

// ProjectionWeeks is the horizon of ProjectWeight; the result has one more
// point than this because week 0 is included.
const ProjectionWeeks = 12

type ProjectionPoint struct {
	Week               int      `json:"week"`
	WeightKg           float64  `json:"weight_kg"`
	WeightLbs          float64  `json:"weight_lbs"`
	BodyFatPct         *float64 `json:"body_fat_pct"`
	CumulativeChangeKg float64  `json:"cumulative_change_kg"`
}

// ProjectWeight applies a constant weekly energy balance linearly. All of
// the change is booked against fat mass. There is no metabolic adaptation
// and weight is not bounded below.
func ProjectWeight(weightKg float64, bodyFat *float64, weeklyDeficit float64) []ProjectionPoint {
	current := weightKg
	var fatMass *float64
	if bodyFat != nil {
		fm := weightKg * *bodyFat / 100
		fatMass = &fm
	}
	kgPerWeek := weeklyDeficit / CaloriesPerKgFat

	points := make([]ProjectionPoint, 0, ProjectionWeeks+1)
	var cumulative float64
	for week := 0; week <= ProjectionWeeks; week++ {
		p := ProjectionPoint{
			Week:               week,
			WeightKg:           current,
			WeightLbs:          current * KgToLbs,
			CumulativeChangeKg: cumulative,
		}
		if fatMass != nil {
			var pct float64
			if current != 0 {
				pct = *fatMass / current * 100
			}
			p.BodyFatPct = &pct
		}
		points = append(points, p)

		current += kgPerWeek
		cumulative += kgPerWeek
		if fatMass != nil {
			*fatMass += kgPerWeek
		}
	}
	return points
}
