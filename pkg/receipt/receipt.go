// Package receipt generates the fixed-width receipt numbers printed on sales.
package receipt

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Length is the display width of every receipt number.
	Length = 8

	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Number returns an 8-character uppercase base-36 token mixing the current
// time with random bits. Uniqueness within a ledger is the caller's job;
// regenerating on collision is cheap.
func Number(now time.Time) (string, error) {
	head := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	if len(head) > 4 {
		head = head[len(head)-4:]
	}

	tail, err := randomToken(Length - len(head))
	if err != nil {
		return "", err
	}
	return head + tail, nil
}

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading randomness: %w", err)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out), nil
}

// Valid reports whether a string has the shape of a receipt number.
func Valid(number string) bool {
	if len(number) != Length {
		return false
	}
	for _, r := range number {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
