package clients

import (
	"regexp"
	"strconv"
	"strings"
)

const dniLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

var (
	dniPattern   = regexp.MustCompile(`^\d{8}[A-Z]$`)
	phonePattern = regexp.MustCompile(`^(\+34)?[6-9]\d{8}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneNoise   = regexp.MustCompile(`[\s\-]`)
)

// NormalizeDNI pasa a mayúsculas y recorta.
func NormalizeDNI(dni string) string {
	return strings.ToUpper(strings.TrimSpace(dni))
}

// ValidDNI: 8 dígitos + letra de control (número % 23).
func ValidDNI(dni string) bool {
	dni = NormalizeDNI(dni)
	if !dniPattern.MatchString(dni) {
		return false
	}
	n, err := strconv.Atoi(dni[:8])
	if err != nil {
		return false
	}
	return dniLetters[n%23] == dni[8]
}

// CleanPhone elimina espacios y guiones.
func CleanPhone(phone string) string {
	return phoneNoise.ReplaceAllString(phone, "")
}

// ValidPhone acepta móviles/fijos españoles de 9 dígitos con +34 opcional.
func ValidPhone(phone string) bool {
	if strings.TrimSpace(phone) == "" {
		return false
	}
	return phonePattern.MatchString(CleanPhone(phone))
}

func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return emailPattern.MatchString(email)
}
