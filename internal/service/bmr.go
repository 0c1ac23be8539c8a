package service

import "github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"

const (
	idealBMI            = 22
	waistToHeightCutoff = 0.5
)

// BMR holds the three basal metabolic rate estimates in kcal/day. Katch is
// 0 when body fat is unknown.
type BMR struct {
	Mifflin float64 `json:"mifflin"`
	Harris  float64 `json:"harris"`
	Katch   float64 `json:"katch"`
	Average float64 `json:"average"`
}

// EstimateBMR computes Mifflin-St Jeor, Harris-Benedict, and (when bodyFat
// is set and positive) Katch-McArdle. Average is the mean of the estimates
// that came out positive, so it uses two or three formulas.
func EstimateBMR(weightKg, heightCm float64, age int, gender model.Gender, bodyFat *float64) BMR {
	a := float64(age)

	s := -161.0
	if gender == model.Male {
		s = 5
	}
	mifflin := 10*weightKg + 6.25*heightCm - 5*a + s

	// Harris-Benedict in its pounds/inches form.
	lbs := weightKg * KgToLbs
	in := heightCm / InToCm
	var harris float64
	if gender == model.Male {
		harris = 66 + 6.23*lbs + 12.7*in - 6.8*a
	} else {
		harris = 655 + 4.35*lbs + 4.7*in - 4.7*a
	}

	var katch float64
	if bodyFat != nil && *bodyFat > 0 {
		lbm := weightKg * (1 - *bodyFat/100)
		katch = 370 + 21.6*lbm
	}

	var sum float64
	var n int
	for _, v := range []float64{mifflin, harris, katch} {
		if v > 0 {
			sum += v
			n++
		}
	}
	var avg float64
	if n > 0 {
		avg = sum / float64(n)
	}

	return BMR{Mifflin: mifflin, Harris: harris, Katch: katch, Average: avg}
}

type WaistRisk string

const (
	WaistRiskUnknown  WaistRisk = "unknown"
	WaistRiskHealthy  WaistRisk = "healthy"
	WaistRiskElevated WaistRisk = "elevated"
)

// BodyMetrics are the informational figures shown next to the BMR. Lean
// and fat mass are nil without a body-fat reading.
type BodyMetrics struct {
	BMI           float64   `json:"bmi"`
	BMICategory   string    `json:"bmi_category"`
	LeanMassKg    *float64  `json:"lean_mass_kg,omitempty"`
	FatMassKg     *float64  `json:"fat_mass_kg,omitempty"`
	IdealWeightKg float64   `json:"ideal_weight_kg"`
	WaistToHeight float64   `json:"waist_to_height"`
	WaistRisk     WaistRisk `json:"waist_risk"`
}

func BodyComposition(weightKg, heightCm, waistCm float64, bodyFat *float64) BodyMetrics {
	var out BodyMetrics
	heightM := heightCm / 100
	if heightM > 0 {
		out.BMI = weightKg / (heightM * heightM)
		out.IdealWeightKg = idealBMI * heightM * heightM
		out.BMICategory = BMICategory(out.BMI)
	}

	if bodyFat != nil {
		fat := weightKg * *bodyFat / 100
		lean := weightKg - fat
		out.FatMassKg = &fat
		out.LeanMassKg = &lean
	}

	out.WaistRisk = WaistRiskUnknown
	if waistCm > 0 && heightCm > 0 {
		out.WaistToHeight = waistCm / heightCm
		out.WaistRisk = WaistRiskHealthy
		if out.WaistToHeight >= waistToHeightCutoff {
			out.WaistRisk = WaistRiskElevated
		}
	}
	return out
}

func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
