package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// DurationLimitMinutes hard upper bound of the max safe duration, one year.
// Keeps minute counts inside int64 and time.Duration arithmetic.
const DurationLimitMinutes uint64 = 365 * 24 * 60

// ProtocolParameters protocol constants shared by every risk component.
// All ratios are dimensionless, 0.75 means 75%.
type ProtocolParameters struct {
	// annualized, used by the kink model and by borrow accrual
	BaseInterestRate decimal.Decimal `json:"base_interest_rate"`
	KinkUtilization  decimal.Decimal `json:"kink_utilization"`
	SlopeBelowKink   decimal.Decimal `json:"slope_below_kink"`
	SlopeAboveKink   decimal.Decimal `json:"slope_above_kink"`
	ReserveFactor    decimal.Decimal `json:"reserve_factor"`

	LTVBase      decimal.Decimal `json:"ltv_base"`
	LTVAmplitude decimal.Decimal `json:"ltv_amplitude"`
	LTVCap       decimal.Decimal `json:"ltv_cap"`
	LTDecayFloor decimal.Decimal `json:"lt_decay_floor"`
	LTAmplitude  decimal.Decimal `json:"lt_amplitude"`
	// per minute
	DecayConstant decimal.Decimal `json:"decay_constant"`

	MinDurationMinutes uint64 `json:"min_duration_minutes"`
	// the decay exponent is only evaluated below this bound
	MaxSafeDurationMinutes uint64 `json:"max_safe_duration_minutes"`
}

// DefaultProtocolParameters parameters set at deployment
func DefaultProtocolParameters() ProtocolParameters {
	return ProtocolParameters{
		BaseInterestRate:       decimal.RequireFromString("0.02"),
		KinkUtilization:        decimal.RequireFromString("0.8"),
		SlopeBelowKink:         decimal.RequireFromString("0.08"),
		SlopeAboveKink:         decimal.RequireFromString("1"),
		ReserveFactor:          decimal.RequireFromString("0.1"),
		LTVBase:                decimal.RequireFromString("0.75"),
		LTVAmplitude:           decimal.RequireFromString("0.15"),
		LTVCap:                 decimal.RequireFromString("0.9"),
		LTDecayFloor:           decimal.RequireFromString("0.77"),
		LTAmplitude:            decimal.RequireFromString("0.18"),
		DecayConstant:          decimal.RequireFromString("0.000333"),
		MinDurationMinutes:     1,
		MaxSafeDurationMinutes: 37,
	}
}

// Validate check ranges and the ordering LT > LTV
func (p ProtocolParameters) Validate() error {
	one := decimal.NewFromInt(1)
	ratios := []decimal.Decimal{
		p.BaseInterestRate,
		p.KinkUtilization,
		p.ReserveFactor,
		p.LTVBase,
		p.LTVAmplitude,
		p.LTVCap,
		p.LTDecayFloor,
		p.LTAmplitude,
		p.DecayConstant,
	}
	for _, r := range ratios {
		if r.IsNegative() || r.GreaterThan(one) {
			return ErrInvalidParameters
		}
	}

	if p.SlopeBelowKink.IsNegative() || p.SlopeAboveKink.IsNegative() {
		return ErrInvalidParameters
	}

	if !p.DecayConstant.IsPositive() || !p.LTVCap.IsPositive() {
		return ErrInvalidParameters
	}

	// LT(t) - LTV(t) = (floor - base) + (ltAmp - ltvAmp)e^-kt must stay positive
	if p.LTDecayFloor.LessThanOrEqual(p.LTVBase) || p.LTAmplitude.LessThan(p.LTVAmplitude) {
		return ErrInvalidParameters
	}

	if p.MaxSafeDurationMinutes < 1 || p.MaxSafeDurationMinutes > DurationLimitMinutes {
		return ErrInvalidParameters
	}

	if p.MinDurationMinutes > p.MaxSafeDurationMinutes {
		return ErrInvalidParameters
	}

	return nil
}

// DurationAllowed duration within [min, max safe]
func (p ProtocolParameters) DurationAllowed(minutes uint64) bool {
	return minutes >= p.MinDurationMinutes && minutes <= p.MaxSafeDurationMinutes
}

// IParameterStore process wide protocol parameters,
// amended only by the privileged admin command
type IParameterStore interface {
	Get(ctx context.Context) (*ProtocolParameters, error)
	Save(ctx context.Context, params *ProtocolParameters) error
}
