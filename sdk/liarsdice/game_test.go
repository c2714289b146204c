package liarsdice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllClaimsCount(t *testing.T) {
	cfg := DefaultConfig()
	claims := cfg.AllClaims()
	require.Len(t, claims, 2*cfg.Dice*cfg.Faces)
	assert.Equal(t, Claim{Quantity: 1, Face: 1}, claims[0])
}

func TestClaimStringRoundTrip(t *testing.T) {
	c := Claim{Quantity: 7, Face: 3}
	parsed, err := ParseClaim(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestParseClaimRejectsMalformed(t *testing.T) {
	_, err := ParseClaim("nonsense")
	assert.Error(t, err)
}

func TestCountFace(t *testing.T) {
	r1 := Hand{1, 2, 2, 5}
	r2 := Hand{2, 6}
	assert.Equal(t, 3, CountFace(r1, r2, 2))
	assert.Equal(t, 0, CountFace(r1, r2, 9))
}

func TestHandKeyFormat(t *testing.T) {
	h := Hand{1, 3, 2}
	assert.Equal(t, "(1, 3, 2)", h.Key())
}

// A 1-element hand must render with Python's trailing-comma tuple repr
// ("(1,)"), not "(1)".
func TestHandKeySingletonHasTrailingComma(t *testing.T) {
	assert.Equal(t, "(1,)", Hand{1}.Key())
}

func TestPl2KeySingletonHand(t *testing.T) {
	got := Pl2Key(Hand{1}, Claim{Quantity: 1, Face: 1})
	assert.Equal(t, "((1,), claim_1_1)", got)
}
