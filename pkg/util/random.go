package util

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateRandomNumber generates a random number between min and max (inclusive)
func GenerateRandomNumber(min, max int) int {
	return min + rand.Intn(max-min+1)
}

// GenerateOrderNumber builds a client-side order number in the form
// ORD-<yyyy-mm-dd>-<nnn>. The numeric suffix is random, not sequential;
// the backend stores whatever the client sends.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%03d", now.Format("2006-01-02"), GenerateRandomNumber(0, 999))
}
