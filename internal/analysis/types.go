// Package analysis derives power metrics from turbine log samples and aggregates them
// by wind speed, by minute and by status code. Every function here is pure: it reads
// its inputs, never mutates them, and holds no state between calls.
package analysis

import (
	"math"

	"github.com/sanspareilsmyn/turbinelens/internal/record"
)

// Column headers of the turbine log. These strings are a fixed contract with the logger export.
const (
	ColumnDCVoltage  = "Vdc"
	ColumnDCCurrent  = "Idc"
	ColumnEuv        = "Euv"
	ColumnEvw        = "Evw"
	ColumnEwu        = "Ewu"
	ColumnIu         = "Iu"
	ColumnIv         = "Iv"
	ColumnIw         = "Iw"
	ColumnWindSpeed  = "WSD"
	ColumnTime       = "TM"
	ColumnStatusCode = "CODE 1"
)

// RequiredColumns lists every column a log must carry.
var RequiredColumns = []string{
	ColumnDCVoltage, ColumnDCCurrent,
	ColumnEuv, ColumnEvw, ColumnEwu,
	ColumnIu, ColumnIv, ColumnIw,
	ColumnWindSpeed, ColumnTime, ColumnStatusCode,
}

const (
	// CutInSpeed is the wind speed (m/s) below which the turbine is not considered producing.
	CutInSpeed = 3.0
	// BetzLimit caps the power coefficient.
	BetzLimit = 0.593
	// MinCpWindSpeed floors the wind speed used in the Cp denominator.
	MinCpWindSpeed = 0.1
)

// UndefinedEfficiency marks a sample whose AC power is zero.
var UndefinedEfficiency = math.Inf(1)

// Sample is one raw log row after type normalization.
type Sample struct {
	DCVoltage float64 // V
	DCCurrent float64 // A

	// Line-to-line voltages (V) and line currents (A).
	Euv, Evw, Ewu float64
	Iu, Iv, Iw    float64

	WindSpeed  float64 // m/s
	Time       record.TimeOfDay
	StatusCode int
}

// TurbineConstants are the externally supplied rotor and air parameters used for Cp.
type TurbineConstants struct {
	AirDensity    float64 // kg/m^3
	RotorDiameter float64 // m
	RotorHeight   float64 // m
}

// DefaultTurbineConstants returns sea-level air and a 10 m x 10 m rotor.
func DefaultTurbineConstants() TurbineConstants {
	return TurbineConstants{AirDensity: 1.225, RotorDiameter: 10.0, RotorHeight: 10.0}
}

// EnrichedSample is a Sample plus its derived columns.
type EnrichedSample struct {
	Sample

	PowerDC          float64 // kW
	PowerAC          float64 // kW
	Efficiency       float64 // %, UndefinedEfficiency when PowerAC == 0
	PowerCoefficient float64 // dimensionless, in [0, BetzLimit]
}

// HasEfficiency reports whether Efficiency is a finite number.
func (s EnrichedSample) HasEfficiency() bool {
	return !math.IsInf(s.Efficiency, 0) && !math.IsNaN(s.Efficiency)
}
