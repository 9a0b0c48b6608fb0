package payments

import "testing"

func TestVerifySignatureAcceptsGenuineConfirmation(t *testing.T) {
	secret := "shhh-gateway-secret"
	sig := expectedSignature("order_G1", "pay_P1", secret)

	if !VerifySignature("order_G1", "pay_P1", sig, secret) {
		t.Fatal("expected genuine signature to verify")
	}
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	secret := "shhh-gateway-secret"
	sig := expectedSignature("order_G1", "pay_P1", secret)

	if VerifySignature("order_G1", "pay_P2", sig, secret) {
		t.Fatal("expected payment id swap to fail verification")
	}
	if VerifySignature("order_G2", "pay_P1", sig, secret) {
		t.Fatal("expected order id swap to fail verification")
	}
	if VerifySignature("order_G1", "pay_P1", sig+"00", secret) {
		t.Fatal("expected mangled signature to fail verification")
	}
	if VerifySignature("order_G1", "pay_P1", sig, "other-secret") {
		t.Fatal("expected wrong secret to fail verification")
	}
}
