package pkg

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionID returns a short random hex identifier for a session.
func GenerateSessionID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
