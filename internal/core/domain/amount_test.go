package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wei(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad test constant: " + s)
	}
	return v
}

func TestParseTokenAmount_Integers(t *testing.T) {
	v, err := ParseTokenAmount("100")
	require.NoError(t, err)
	assert.Equal(t, wei("100000000000000000000"), v)

	v, err = ParseTokenAmount("0")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), v)

	v, err = ParseTokenAmount("1")
	require.NoError(t, err)
	assert.Equal(t, wei("1000000000000000000"), v)
}

func TestParseTokenAmount_Fractions(t *testing.T) {
	v, err := ParseTokenAmount("12.5")
	require.NoError(t, err)
	assert.Equal(t, wei("12500000000000000000"), v)

	v, err = ParseTokenAmount("0.000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), v)

	v, err = ParseTokenAmount(".5")
	require.NoError(t, err)
	assert.Equal(t, wei("500000000000000000"), v)

	// Trailing dot means zero fraction
	v, err = ParseTokenAmount("7.")
	require.NoError(t, err)
	assert.Equal(t, wei("7000000000000000000"), v)
}

func TestParseTokenAmount_TruncatesBeyond18Places(t *testing.T) {
	// 19th decimal digit is dropped, not rounded
	v, err := ParseTokenAmount("0.0000000000000000019")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), v)
}

func TestParseTokenAmount_Invalid(t *testing.T) {
	for _, s := range []string{"abc", "", "  ", "-5", "1.2.3", "1,5", "0x10", "1e18", "."} {
		_, err := ParseTokenAmount(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestFormatTokenAmount(t *testing.T) {
	assert.Equal(t, "100", FormatTokenAmount(wei("100000000000000000000")))
	assert.Equal(t, "12.5", FormatTokenAmount(wei("12500000000000000000")))
	assert.Equal(t, "0.000000000000000001", FormatTokenAmount(big.NewInt(1)))
	assert.Equal(t, "0", FormatTokenAmount(big.NewInt(0)))
	assert.Equal(t, "0", FormatTokenAmount(nil))
}

func TestTokenAmount_RoundTripIntegers(t *testing.T) {
	for _, s := range []string{"1", "70", "100", "999999"} {
		v, err := ParseTokenAmount(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatTokenAmount(v))
	}
}
