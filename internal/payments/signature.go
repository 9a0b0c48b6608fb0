package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// expectedSignature computes the gateway confirmation signature: an
// HMAC-SHA256 over "gatewayOrderId|gatewayPaymentId" keyed by the shared
// secret, hex encoded.
func expectedSignature(gatewayOrderID, gatewayPaymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a gateway payment confirmation signature. The
// comparison is constant time.
func VerifySignature(gatewayOrderID, gatewayPaymentID, signature, secret string) bool {
	expected := expectedSignature(gatewayOrderID, gatewayPaymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
