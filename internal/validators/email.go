package validators

import (
	"net/mail"
	"strings"
)

// IsEmail accepts a bare address, without display name.
func IsEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

func IsPostalCode(cp string) bool {
	if len(cp) != 5 {
		return false
	}
	for _, r := range cp {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
