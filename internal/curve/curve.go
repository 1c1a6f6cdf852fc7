package curve

import (
	"sync"

	"chrono/core"

	"github.com/shopspring/decimal"
)

// MaxPricision fractional digits kept by every curve value
const MaxPricision int32 = 16

var (
	// e^-x rounds to zero at MaxPricision digits beyond this exponent
	decayCutoff = decimal.New(40, 0)

	// decimal.ExpTaylor grows a package level factorial table without locking
	expMux sync.Mutex
)

// Engine the only implementation of the ltv, lt and interest rate curves
type Engine struct {
	params core.ProtocolParameters
}

// New new engine bound to a parameter set
func New(params core.ProtocolParameters) *Engine {
	return &Engine{params: params}
}

// Params parameters the engine was built with
func (e *Engine) Params() core.ProtocolParameters {
	return e.params
}

// Decay e^(-decayConstant * minutes)
func (e *Engine) Decay(minutes uint64) decimal.Decimal {
	if minutes == 0 {
		return decimal.New(1, 0)
	}

	if minutes > core.DurationLimitMinutes {
		minutes = core.DurationLimitMinutes
	}

	x := e.params.DecayConstant.Mul(decimal.NewFromInt(int64(minutes)))
	if x.GreaterThanOrEqual(decayCutoff) {
		return decimal.Zero
	}

	expMux.Lock()
	v, err := x.Neg().ExpTaylor(MaxPricision)
	expMux.Unlock()
	if err != nil {
		// ExpTaylor only fails for a negative precision
		panic(err)
	}

	return v
}

// LTV loan to value ceiling for a duration
// ltv = min(cap, base + amplitude * e^(-kt))
func (e *Engine) LTV(minutes uint64) decimal.Decimal {
	v := e.params.LTVBase.Add(e.params.LTVAmplitude.Mul(e.Decay(minutes)))
	return decimal.Min(e.params.LTVCap, v).Truncate(MaxPricision)
}

// LT liquidation threshold for a duration, uncapped
// lt = floor + amplitude * e^(-kt)
func (e *Engine) LT(minutes uint64) decimal.Decimal {
	return e.params.LTDecayFloor.Add(e.params.LTAmplitude.Mul(e.Decay(minutes))).Truncate(MaxPricision)
}

// BorrowAPY kink model
//
//	u <= kink: base + slope1 * u
//	u >  kink: base + slope1 * kink + slope2 * (u - kink)
func (e *Engine) BorrowAPY(utilization decimal.Decimal) decimal.Decimal {
	u := clamp(utilization)
	p := e.params

	if u.LessThanOrEqual(p.KinkUtilization) {
		return p.BaseInterestRate.Add(p.SlopeBelowKink.Mul(u)).Truncate(MaxPricision)
	}

	normalRate := p.BaseInterestRate.Add(p.SlopeBelowKink.Mul(p.KinkUtilization))
	excessUtil := u.Sub(p.KinkUtilization)
	return normalRate.Add(p.SlopeAboveKink.Mul(excessUtil)).Truncate(MaxPricision)
}

// SupplyAPY borrowAPY * u * (1 - reserveFactor)
func (e *Engine) SupplyAPY(utilization decimal.Decimal) decimal.Decimal {
	u := clamp(utilization)
	oneMinusReserveFactor := decimal.New(1, 0).Sub(e.params.ReserveFactor)
	return e.BorrowAPY(u).Mul(u).Mul(oneMinusReserveFactor).Truncate(MaxPricision)
}

// Point curve values at one duration
type Point struct {
	Minutes uint64          `json:"minutes"`
	LTV     decimal.Decimal `json:"ltv"`
	LT      decimal.Decimal `json:"lt"`
}

// Points ltv and lt for every allowed duration
func (e *Engine) Points() []Point {
	points := make([]Point, 0, e.params.MaxSafeDurationMinutes-e.params.MinDurationMinutes+1)
	for t := e.params.MinDurationMinutes; t <= e.params.MaxSafeDurationMinutes; t++ {
		points = append(points, Point{
			Minutes: t,
			LTV:     e.LTV(t),
			LT:      e.LT(t),
		})
	}

	return points
}

func clamp(u decimal.Decimal) decimal.Decimal {
	if u.IsNegative() {
		return decimal.Zero
	}

	if one := decimal.New(1, 0); u.GreaterThan(one) {
		return one
	}

	return u
}
