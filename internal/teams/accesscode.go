package teams

import (
	"crypto/rand"
	"fmt"
)

const (
	accessCodeLen      = 8
	accessCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// generateAccessCode draws an 8-character code uniformly from A-Z0-9 using
// crypto/rand. Rejection sampling keeps the distribution uniform.
func generateAccessCode() (string, error) {
	out := make([]byte, 0, accessCodeLen)
	buf := make([]byte, 1)
	// largest multiple of len(alphabet) below 256
	max := byte(256 / len(accessCodeAlphabet) * len(accessCodeAlphabet))
	for len(out) < accessCodeLen {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("access code: %w", err)
		}
		if buf[0] >= max {
			continue
		}
		out = append(out, accessCodeAlphabet[int(buf[0])%len(accessCodeAlphabet)])
	}
	return string(out), nil
}

// newAccessCode generates a code that collides with no existing team,
// regenerating instead of trusting probability alone.
func newAccessCode(reg Registry, gen func() (string, error)) (string, error) {
	for {
		code, err := gen()
		if err != nil {
			return "", err
		}
		if reg.teamByAccessCode(code) == nil {
			return code, nil
		}
	}
}
