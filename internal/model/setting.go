package model

import "time"

// Setting is a key/value configuration record. Sensitive values (the
// market-data API token) are stored fernet-encrypted.
type Setting struct {
	Key       string
	Value     string
	Encrypted bool
	UpdatedAt time.Time
}
