package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// PaymentSignature computes the hex HMAC-SHA256 the gateway attaches to
// a completed checkout: the key secret over "orderID|paymentID".
func PaymentSignature(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(fmt.Sprintf("%s|%s", orderID, paymentID)))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyPaymentSignature checks a callback signature in constant time.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	expected := PaymentSignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VoucherSignature signs the QR voucher payload for a paid booking so
// the voucher cannot be forged for an unpaid one.
func VoucherSignature(bookingID uint, orderID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(fmt.Sprintf("booking:%d;order:%s", bookingID, orderID)))
	return hex.EncodeToString(h.Sum(nil))
}
