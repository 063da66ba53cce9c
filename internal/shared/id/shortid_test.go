package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	generated, err := Generate(DefaultLength)
	require.NoError(t, err)
	assert.Len(t, generated, DefaultLength)

	for _, r := range generated {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestGenerate_NonPositiveLengthUsesDefault(t *testing.T) {
	generated, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, generated, DefaultLength)
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		generated, err := Generate(DefaultLength)
		require.NoError(t, err)
		assert.False(t, seen[generated], "duplicate ID %s", generated)
		seen[generated] = true
	}
}

func TestNewOrderID(t *testing.T) {
	orderID, err := NewOrderID()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(orderID, "ord_"))
	assert.Len(t, orderID, len(PrefixOrder)+1+DefaultLength)
	assert.NoError(t, ValidatePrefix(orderID, PrefixOrder))
}

func TestNewTransactionID(t *testing.T) {
	txnID, err := NewTransactionID()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(txnID, "txn_"))
	assert.NoError(t, ValidatePrefix(txnID, PrefixTransaction))
}

func TestNewOrderToken(t *testing.T) {
	token, err := NewOrderToken()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(token, "tok_"))
	assert.Len(t, token, len(PrefixOrderToken)+1+TokenLength)
}

func TestParsePrefixedID(t *testing.T) {
	prefix, shortID, err := ParsePrefixedID("ord_8fK2mP9vL3nQxT1a")
	require.NoError(t, err)
	assert.Equal(t, "ord", prefix)
	assert.Equal(t, "8fK2mP9vL3nQxT1a", shortID)

	for _, invalid := range []string{"", "ord", "ord_", "_abc"} {
		_, _, err := ParsePrefixedID(invalid)
		assert.Error(t, err, "input %q", invalid)
	}
}

func TestValidatePrefix(t *testing.T) {
	assert.NoError(t, ValidatePrefix("txn_abc123", PrefixTransaction))
	assert.Error(t, ValidatePrefix("ord_abc123", PrefixTransaction))
	assert.Error(t, ValidatePrefix("garbage", PrefixTransaction))
}
