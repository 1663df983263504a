package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/karwanotmani/bazarpos-backend/pkg/receipt"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many sales any page can request.
	MaxLimit = 100
)

// Params holds pagination inputs from controllers.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor marks the last sale of the previous page.
type Cursor struct {
	Timestamp     time.Time
	ReceiptNumber string
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds a base64 cursor string from the provided values.
func EncodeCursor(cursor Cursor) string {
	payload := fmt.Sprintf("%s|%s", cursor.Timestamp.UTC().Format(time.RFC3339Nano), cursor.ReceiptNumber)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// ParseCursor decodes the cursor string back into its components.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor format")
	}

	t, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	if !receipt.Valid(parts[1]) {
		return nil, fmt.Errorf("invalid cursor receipt number")
	}
	return &Cursor{
		Timestamp:     t,
		ReceiptNumber: parts[1],
	}, nil
}
