package analysis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func balancedSample(vdc, idc, vac, iac, wind float64) Sample {
	return Sample{
		DCVoltage: vdc, DCCurrent: idc,
		Euv: vac, Evw: vac, Ewu: vac,
		Iu: iac, Iv: iac, Iw: iac,
		WindSpeed:  wind,
		StatusCode: 16,
	}
}

func TestPowerFormulas(t *testing.T) {
	s := Sample{
		DCVoltage: 380, DCCurrent: 12.5,
		Euv: 400, Evw: 395, Ewu: 405,
		Iu: 10, Iv: 11, Iw: 9,
	}
	wantDC := 380 * 12.5 / 1000
	wantAC := ((400*10 + 395*11 + 405*9) / 3.0) * math.Sqrt(3) / 1000

	assert.InDelta(t, wantDC, PowerDC(s), tolerance)
	assert.InDelta(t, wantAC, PowerAC(s), tolerance)

	e := Enrich(s, DefaultTurbineConstants())
	assert.InDelta(t, wantDC, e.PowerDC, tolerance)
	assert.InDelta(t, wantAC, e.PowerAC, tolerance)
	assert.InDelta(t, wantDC/wantAC*100, e.Efficiency, tolerance)
	assert.True(t, e.HasEfficiency())
	assert.Equal(t, s, e.Sample)
}

func TestEfficiencyZeroACIsUndefined(t *testing.T) {
	e := Enrich(balancedSample(400, 10, 0, 0, 5), DefaultTurbineConstants())
	assert.Equal(t, 0.0, e.PowerAC)
	assert.True(t, math.IsInf(e.Efficiency, 1))
	assert.False(t, e.HasEfficiency())

	assert.True(t, math.IsInf(Efficiency(0, 0), 1))
}

func TestPowerCoefficient(t *testing.T) {
	c := DefaultTurbineConstants()

	// 6.928 kW at 10 m/s over 100 m^2.
	ac := PowerAC(balancedSample(0, 0, 400, 10, 10))
	want := ac * 1000 / (0.5 * 1.225 * 100 * 1000)
	assert.InDelta(t, want, PowerCoefficient(ac, 10, c), tolerance)

	assert.Equal(t, BetzLimit, PowerCoefficient(ac, 5, c), "clamped to Betz limit")
	assert.Equal(t, 0.0, PowerCoefficient(-3, 10, c), "negative power clamps to zero")
	assert.Equal(t, 0.0, PowerCoefficient(ac, 10, TurbineConstants{}), "zero area yields zero")
	assert.Equal(t, BetzLimit, PowerCoefficient(ac, 0, c), "zero wind uses floor speed")
}

func TestPowerCoefficientLowWindUsesFloor(t *testing.T) {
	c := TurbineConstants{AirDensity: 1, RotorDiameter: 1, RotorHeight: 1}
	// At the 0.1 m/s floor the denominator is 0.0005, so a tiny power stays under the limit.
	p := 0.0000001 // kW
	want := p * 1000 / (0.5 * 0.001)
	assert.InDelta(t, want, PowerCoefficient(p, 0, c), tolerance)
	assert.InDelta(t, want, PowerCoefficient(p, 0.05, c), tolerance)
}

func TestPowerCoefficientAlwaysWithinBetz(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		s := balancedSample(rng.Float64()*600, rng.Float64()*40, rng.Float64()*500, rng.Float64()*30, rng.Float64()*25)
		if i%10 == 0 {
			s.WindSpeed = 0
		}
		c := TurbineConstants{
			AirDensity:    rng.Float64() * 2,
			RotorDiameter: rng.Float64() * 20,
			RotorHeight:   rng.Float64() * 20,
		}
		cp := Enrich(s, c).PowerCoefficient
		require.GreaterOrEqual(t, cp, 0.0)
		require.LessOrEqual(t, cp, BetzLimit)
	}
}

func TestEnrichAllPreservesOrderAndInput(t *testing.T) {
	in := []Sample{
		balancedSample(100, 1, 100, 1, 3),
		balancedSample(200, 2, 200, 2, 4),
	}
	snapshot := append([]Sample(nil), in...)

	out := EnrichAll(in, DefaultTurbineConstants())
	require.Len(t, out, 2)
	assert.Equal(t, in[0], out[0].Sample)
	assert.Equal(t, in[1], out[1].Sample)
	assert.Equal(t, snapshot, in)
}
