package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// TokenDecimals is the token's fixed-point scale: amounts cross the chain
// boundary as integers of 10^-18 tokens.
const TokenDecimals = 18

var weiPerToken = new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil)

// ParseTokenAmount converts a human-readable decimal string ("100", "12.5")
// into the token's smallest-unit integer representation. Integer amounts
// round-trip exactly; fractional digits beyond 18 places are truncated, not
// rounded. Empty, negative, or non-decimal input is rejected.
func ParseTokenAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if hasFrac && fracPart != "" && !isDigits(fracPart) {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	// Truncate past 18 decimal places
	if len(fracPart) > TokenDecimals {
		fracPart = fracPart[:TokenDecimals]
	}
	fracPart += strings.Repeat("0", TokenDecimals-len(fracPart))

	whole, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	frac, ok := new(big.Int).SetString(fracPart, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	return whole.Mul(whole, weiPerToken).Add(whole, frac), nil
}

// FormatTokenAmount renders a smallest-unit integer as a decimal token string
// with trailing zeros trimmed: 100*10^18 -> "100", 1 -> "0.000000000000000001".
func FormatTokenAmount(wei *big.Int) string {
	if wei == nil || wei.Sign() == 0 {
		return "0"
	}

	whole, frac := new(big.Int).QuoRem(wei, weiPerToken, new(big.Int))
	if frac.Sign() == 0 {
		return whole.String()
	}

	fracStr := fmt.Sprintf("%0*s", TokenDecimals, frac.String())
	fracStr = strings.TrimRight(fracStr, "0")
	return whole.String() + "." + fracStr
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
