package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrInvalidParameters invalid protocol parameters
	ErrInvalidParameters ErrorCode = 100001

	// ErrNotFound no position with the given id
	ErrNotFound ErrorCode = 100100
	// ErrUnauthorized caller is not the position owner
	ErrUnauthorized ErrorCode = 100101
	// ErrAlreadyClosed position is no longer active
	ErrAlreadyClosed ErrorCode = 100102
	// ErrLTVExceeded requested ltv above the duration ceiling
	ErrLTVExceeded ErrorCode = 100103
	// ErrMaxDurationExceeded duration outside the safe range
	ErrMaxDurationExceeded ErrorCode = 100104
	// ErrAmountOverflow amount not representable in fixed point
	ErrAmountOverflow ErrorCode = 100105
	// ErrInsufficientRepayment supplied less than the total repayment
	ErrInsufficientRepayment ErrorCode = 100106
	// ErrZeroAmount amount must be positive
	ErrZeroAmount ErrorCode = 100107
	// ErrInsufficientLiquidity vault cannot cover the disbursement
	ErrInsufficientLiquidity ErrorCode = 100108
	// ErrInvalidPrice missing or non-positive oracle price
	ErrInvalidPrice ErrorCode = 100109
	// ErrUnsupportedToken token has no vault
	ErrUnsupportedToken ErrorCode = 100110
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:               "unknown",
	ErrInvalidParameters:     "invalid protocol parameters",
	ErrNotFound:              "position not found",
	ErrUnauthorized:          "unauthorized",
	ErrAlreadyClosed:         "position already closed",
	ErrLTVExceeded:           "ltv exceeded",
	ErrMaxDurationExceeded:   "duration out of range",
	ErrAmountOverflow:        "amount overflow",
	ErrInsufficientRepayment: "insufficient repayment",
	ErrZeroAmount:            "zero amount",
	ErrInsufficientLiquidity: "insufficient liquidity",
	ErrInvalidPrice:          "invalid price",
	ErrUnsupportedToken:      "unsupported token",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

// Message human readable description of the code
func (e ErrorCode) Message() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}

func (e ErrorCode) Error() string {
	return e.Message()
}
