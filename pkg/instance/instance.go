package instance

import "os"

// GetID returns the register identifier for this process or a default value.
// Multi-terminal shops set BAZARPOS_REGISTER_ID so log lines and receipts can
// be traced back to a till.
func GetID() string {
	if id := os.Getenv("BAZARPOS_REGISTER_ID"); id != "" {
		return id
	}
	return "register-1"
}
