package id

import "crypto/rand"

const length = 12

// New creates a short alphanumeric identifier for tests and questions.
// Sessions use UUIDs; these short ids are meant to stay readable in
// exported spreadsheets and log lines.
func New() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}
	return string(b)
}
