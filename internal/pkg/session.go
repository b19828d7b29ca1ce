package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - returns a random identifier for a browser or websocket session.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// IsSessionID - reports whether the value looks like an identifier produced by GenerateNewSessionID.
func IsSessionID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
