package validators

import "regexp"

// Formato: 12345678-9 (dígito verificador numérico o K).
var rutPattern = regexp.MustCompile(`^\d{7,8}-[\dkK]$`)

func IsValidRUT(rut string) bool {
	return rutPattern.MatchString(rut)
}

var phoneClean = regexp.MustCompile(`[\s\-\(\)]`)
var phonePattern = regexp.MustCompile(`^[\+\d]{8,15}$`)

// IsValidPhone acepta números con espacios, guiones y paréntesis,
// 8 a 15 dígitos una vez limpios. Vacío es válido (campo opcional).
func IsValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phoneClean.ReplaceAllString(phone, ""))
}
