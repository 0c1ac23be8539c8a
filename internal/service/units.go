package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
)

const (
	KgToLbs = 2.20462
	InToCm  = 2.54
)

type unitKind string

const (
	unitKindMass   unitKind = "mass"
	unitKindLength unitKind = "length"
)

type unitDef struct {
	kind       unitKind
	toBaseUnit float64
}

var unitTable = map[string]unitDef{
	// mass (base = kg)
	"kg":  {kind: unitKindMass, toBaseUnit: 1},
	"lb":  {kind: unitKindMass, toBaseUnit: 1 / KgToLbs},
	"lbs": {kind: unitKindMass, toBaseUnit: 1 / KgToLbs},

	// length (base = cm)
	"cm": {kind: unitKindLength, toBaseUnit: 1},
	"in": {kind: unitKindLength, toBaseUnit: InToCm},
	"ft": {kind: unitKindLength, toBaseUnit: 12 * InToCm},
}

// BodyMeasures is the metric view of a profile that every formula reads.
type BodyMeasures struct {
	WeightKg float64
	HeightCm float64
	WaistCm  float64
}

// NormalizeProfile converts the active unit pair of p to metric. Absent or
// unusable optional values come back as 0.
func NormalizeProfile(p model.Profile) BodyMeasures {
	waist := optionalValue(p.Waist)
	if p.UnitSystem == model.Imperial {
		return BodyMeasures{
			WeightKg: p.WeightLbs / KgToLbs,
			HeightCm: (p.HeightFt*12 + p.HeightIn) * InToCm,
			WaistCm:  waist * InToCm,
		}
	}
	return BodyMeasures{
		WeightKg: p.WeightKg,
		HeightCm: p.HeightCm,
		WaistCm:  waist,
	}
}

// SyncUnits rewrites the display-only unit pair of p from the active pair.
func SyncUnits(p model.Profile) model.Profile {
	m := NormalizeProfile(p)
	if p.UnitSystem == model.Imperial {
		p.WeightKg = m.WeightKg
		p.HeightCm = m.HeightCm
		return p
	}
	p.WeightLbs = m.WeightKg * KgToLbs
	totalIn := m.HeightCm / InToCm
	p.HeightFt = math.Floor(totalIn / 12)
	p.HeightIn = totalIn - p.HeightFt*12
	return p
}

// ConvertMeasure converts value between two units of the same kind
// (kg/lb or cm/in/ft).
func ConvertMeasure(value float64, fromUnit, toUnit string) (float64, error) {
	from, ok := resolveUnit(fromUnit)
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", fromUnit)
	}
	to, ok := resolveUnit(toUnit)
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", toUnit)
	}
	if from.kind != to.kind {
		return 0, fmt.Errorf("cannot convert %s to %s", fromUnit, toUnit)
	}
	return value * from.toBaseUnit / to.toBaseUnit, nil
}

func resolveUnit(unit string) (unitDef, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	def, ok := unitTable[u]
	return def, ok
}

func optionalValue(v *float64) float64 {
	if v == nil || !isFinite(*v) || *v < 0 {
		return 0
	}
	return *v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
