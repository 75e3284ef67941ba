// Package signature implements the payment gateway's checkout callback
// signature scheme: hex(HMAC-SHA256(secret, orderID+"|"+paymentID)).
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the gateway signature over the given order and payment
// identifiers.
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig matches the expected signature. Any empty input
// rejects before the HMAC is computed; the final comparison is
// constant-time.
func Verify(orderID, paymentID, sig, secret string) bool {
	if orderID == "" || paymentID == "" || sig == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(orderID, paymentID, secret)), []byte(sig))
}
