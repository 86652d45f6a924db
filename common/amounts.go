package common

import (
	"errors"
	"math/big"
	"strings"
)

// Token amounts cross the wire as big-int strings scaled by the token's
// precision. These helpers convert between the display form ("1.234")
// and the scaled form ("1234" at precision 3).

var ErrBadAmount = errors.New("amount is not a valid decimal number")

// Default precisions for common tokens, so the usual path avoids a lookup.
var DefaultPrecisions = map[string]int{
	"STEEM": 3,
	"SBD":   3,
	"ECH":   8,
	"MEER":  8,
}

// Sidechain native tokens carry no issuer.
var nativeTokens = map[string]bool{
	"ECH":  true,
	"MEER": true,
}

func IsNativeToken(symbol string) bool {
	return nativeTokens[symbol]
}

// AmountToBigInt converts a decimal amount to its scaled big-int string.
// The fractional part is padded or truncated to the precision.
func AmountToBigInt(amount string, precision int) (string, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return "", ErrBadAmount
	}

	neg := strings.HasPrefix(amount, "-")
	if neg {
		amount = amount[1:]
	}

	intPart, fracPart, _ := strings.Cut(amount, ".")
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) < precision {
		fracPart = fracPart + strings.Repeat("0", precision-len(fracPart))
	} else {
		fracPart = fracPart[:precision]
	}

	combined := intPart + fracPart
	v, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return "", ErrBadAmount
	}
	if neg {
		v.Neg(v)
	}
	return v.String(), nil
}

// BigIntToAmount converts a scaled big-int string back to its decimal
// display form, with trailing zeroes trimmed.
func BigIntToAmount(scaled string, precision int) (string, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(scaled), 10)
	if !ok {
		return "", ErrBadAmount
	}

	sign := ""
	if v.Sign() < 0 {
		sign = "-"
		v.Abs(v)
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)
	intPart := new(big.Int).Quo(v, divisor)
	fracPart := new(big.Int).Rem(v, divisor)

	if fracPart.Sign() == 0 {
		return sign + intPart.String(), nil
	}

	fracStr := fracPart.String()
	for len(fracStr) < precision {
		fracStr = "0" + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		return sign + intPart.String(), nil
	}
	return sign + intPart.String() + "." + fracStr, nil
}
