package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ValidSignature(t *testing.T) {
	sig := Sign("order_123", "pay_456", "secret")
	assert.True(t, Verify("order_123", "pay_456", sig, "secret"))
}

func TestVerify_SingleCharacterMutations(t *testing.T) {
	orderID, paymentID, secret := "order_123", "pay_456", "secret"
	sig := Sign(orderID, paymentID, secret)
	require.True(t, Verify(orderID, paymentID, sig, secret))

	assert.False(t, Verify("order_124", paymentID, sig, secret), "mutated order id")
	assert.False(t, Verify(orderID, "pay_457", sig, secret), "mutated payment id")
	assert.False(t, Verify(orderID, paymentID, sig, "secreT"), "mutated secret")

	mutated := []byte(sig)
	if mutated[0] == 'a' {
		mutated[0] = 'b'
	} else {
		mutated[0] = 'a'
	}
	assert.False(t, Verify(orderID, paymentID, string(mutated), secret), "mutated signature")
}

func TestVerify_EmptyInputsShortCircuit(t *testing.T) {
	sig := Sign("order_123", "pay_456", "secret")

	assert.False(t, Verify("", "pay_456", sig, "secret"))
	assert.False(t, Verify("order_123", "", sig, "secret"))
	assert.False(t, Verify("order_123", "pay_456", "", "secret"))
}

func TestVerify_WrongLengthSignature(t *testing.T) {
	sig := Sign("order_123", "pay_456", "secret")
	assert.False(t, Verify("order_123", "pay_456", sig[:10], "secret"))
	assert.False(t, Verify("order_123", "pay_456", sig+"00", "secret"))
}
