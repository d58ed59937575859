package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// OnlyDigits strips every non digit character, used to unmask CPF and phone input
func OnlyDigits(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

// NormalizeSearch lowercases and trims a search query
func NormalizeSearch(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// FormatCPF renders 11 digits as 000.000.000-00
func FormatCPF(cpf string) string {
	digits := OnlyDigits(cpf)
	if len(digits) != 11 {
		return cpf
	}
	return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
}

// FormatPhone renders 11 digits as (00) 00000-0000 and 10 digits as (00) 0000-0000
func FormatPhone(phone string) string {
	digits := OnlyDigits(phone)
	switch len(digits) {
	case 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	case 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	}
	return phone
}

// CleanFileName removes invalid characters from filename
func CleanFileName(filename string) string {
	// Replace invalid characters with underscore
	reg := regexp.MustCompile(`[<>:"/\\|?*]`)
	cleaned := reg.ReplaceAllString(filename, "_")

	// Remove extra spaces and trim
	cleaned = strings.TrimSpace(cleaned)
	cleaned = regexp.MustCompile(`\s+`).ReplaceAllString(cleaned, "_")

	return cleaned
}
