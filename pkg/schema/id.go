package schema

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// sessionIDAlphabet avoids '-' and '_' so ids stay readable in log lines.
const sessionIDAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewSessionID generates a new session ID in format MC-{nanoid(12)}.
func NewSessionID() (string, error) {
	id, err := gonanoid.Generate(sessionIDAlphabet, 12)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("MC-%s", id), nil
}
