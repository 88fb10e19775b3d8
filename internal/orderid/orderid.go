// Package orderid generates human-readable order identifiers of the form
// "ATR YYMMDD XXXXXX". The six-character code is drawn from a 32-symbol
// alphabet that leaves out the visually confusable characters 0/O and 1/I,
// so ids survive being read over the phone or typed from a screenshot.
package orderid

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"
)

// 24 letters + 8 digits. 32 symbols means an unbiased draw from a random
// byte (256 = 8*32) and ~1.07e9 combinations per day.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLen = 6

// Generate produces a new id. No uniqueness check is made against the
// store; the collision probability over a day is accepted as negligible.
// Use GenerateUnique when the caller wants the stronger guarantee.
func Generate(now time.Time) string {
	buf := make([]byte, codeLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; there is no
		// sensible fallback for an id the business keys on.
		panic(fmt.Sprintf("orderid: rand.Read: %v", err))
	}
	code := make([]byte, codeLen)
	for i, b := range buf {
		code[i] = alphabet[int(b)%len(alphabet)]
	}
	return fmt.Sprintf("ATR %s %s", now.Format("060102"), code)
}

// GenerateUnique retries Generate until exists reports the id free.
// The attempt cap only trips if the store is effectively full or exists
// is misbehaving.
func GenerateUnique(ctx context.Context, now time.Time, exists func(ctx context.Context, id string) (bool, error)) (string, error) {
	const maxAttempts = 5
	for i := 0; i < maxAttempts; i++ {
		id := Generate(now)
		taken, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("orderid: uniqueness check: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("orderid: no free id after %d attempts", maxAttempts)
}
