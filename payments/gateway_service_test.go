package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signFor(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "test_gateway_secret"
	orderID := "order_N8qgmLWEjCromX"
	paymentID := "pay_N8qhB4xcTyGQPn"

	good := signFor(orderID, paymentID, secret)
	if !VerifyPaymentSignature(orderID, paymentID, good, secret) {
		t.Error("valid signature was rejected")
	}
}

func TestVerifyPaymentSignatureRejectsTampering(t *testing.T) {
	secret := "test_gateway_secret"
	good := signFor("order_abc", "pay_def", secret)

	cases := []struct {
		name                         string
		orderID, paymentID, sig, key string
	}{
		{"wrong order id", "order_xyz", "pay_def", good, secret},
		{"wrong payment id", "order_abc", "pay_zzz", good, secret},
		{"wrong secret", "order_abc", "pay_def", good, "other_secret"},
		{"garbage signature", "order_abc", "pay_def", "deadbeef", secret},
		{"empty signature", "order_abc", "pay_def", "", secret},
		{"empty secret", "order_abc", "pay_def", good, ""},
	}
	for _, tc := range cases {
		if VerifyPaymentSignature(tc.orderID, tc.paymentID, tc.sig, tc.key) {
			t.Errorf("%s: forged callback was accepted", tc.name)
		}
	}
}
