package analysis

import "math"

var sqrt3 = math.Sqrt(3)

// PowerDC returns the DC output power in kW.
func PowerDC(s Sample) float64 {
	return s.DCVoltage * s.DCCurrent / 1000
}

// PowerAC returns the three-phase AC power in kW from line-to-line voltages and line currents.
func PowerAC(s Sample) float64 {
	phaseMean := (s.Euv*s.Iu + s.Evw*s.Iv + s.Ewu*s.Iw) / 3
	return phaseMean * sqrt3 / 1000
}

// Efficiency returns powerDC/powerAC as a percentage, or UndefinedEfficiency when powerAC is zero.
func Efficiency(powerDC, powerAC float64) float64 {
	if powerAC == 0 {
		return UndefinedEfficiency
	}
	return powerDC / powerAC * 100
}

// PowerCoefficient returns the turbine Cp clamped to [0, BetzLimit].
// Wind speeds under MinCpWindSpeed are raised to it before cubing.
func PowerCoefficient(powerAC, windSpeed float64, c TurbineConstants) float64 {
	v := math.Max(windSpeed, MinCpWindSpeed)
	area := c.RotorHeight * c.RotorDiameter
	denom := 0.5 * c.AirDensity * area * v * v * v

	cp := 0.0
	if denom > 0 {
		cp = powerAC * 1000 / denom
	}
	if math.IsNaN(cp) {
		return 0
	}
	return math.Min(math.Max(cp, 0), BetzLimit)
}

// Enrich computes the derived columns of a single sample.
func Enrich(s Sample, c TurbineConstants) EnrichedSample {
	dc := PowerDC(s)
	ac := PowerAC(s)
	return EnrichedSample{
		Sample:           s,
		PowerDC:          dc,
		PowerAC:          ac,
		Efficiency:       Efficiency(dc, ac),
		PowerCoefficient: PowerCoefficient(ac, s.WindSpeed, c),
	}
}

// EnrichAll enriches every sample, preserving order.
func EnrichAll(samples []Sample, c TurbineConstants) []EnrichedSample {
	out := make([]EnrichedSample, len(samples))
	for i, s := range samples {
		out[i] = Enrich(s, c)
	}
	return out
}
