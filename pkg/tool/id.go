package tool

import (
	"strings"

	"github.com/google/uuid"
)

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// GenerateIDWithPrefix returns a collision-resistant opaque identifier of the
// form "<prefix>_<uuidv7-hex>", e.g. "pay_0192d5a3b1f07c3e9a4b6d2f8e1c0a7b".
func GenerateIDWithPrefix(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(GenerateUUIDV7(), "-", "")
}

// GenerateClientSecret derives the one-time opaque client secret for a payment.
func GenerateClientSecret(paymentID string) string {
	return GenerateIDWithPrefix(paymentID + "_secret")
}
