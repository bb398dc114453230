package handlers

import (
	"fmt"
	"strings"

	"payetonkawa/internal/models"
)

// normalizeAccountType maps the account type sent by the storefront form
// ("Particulier" / "Professionnel", any casing) onto the stored value.
func normalizeAccountType(role string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", models.TypeParticulier:
		return models.TypeParticulier, nil
	case models.TypeProfessionnel:
		return models.TypeProfessionnel, nil
	default:
		return "", fmt.Errorf("unknown account type: %s", role)
	}
}

// validateProfessionnel enforces the extra fields a professional account
// must carry: a company name and a SIRET of 9 to 14 characters.
func validateProfessionnel(companyName, siret string) error {
	if strings.TrimSpace(companyName) == "" {
		return fmt.Errorf("company name is required for professional accounts")
	}
	length := len(strings.TrimSpace(siret))
	if length < 9 || length > 14 {
		return fmt.Errorf("siret must contain between 9 and 14 characters")
	}
	return nil
}

// composeAdresse flattens the structured address of the registration form
// into the single address line stored on the client record.
func composeAdresse(line1, line2, postalCode, city, country string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{line1, line2} {
		if v := strings.TrimSpace(p); v != "" {
			parts = append(parts, v)
		}
	}
	locality := strings.TrimSpace(strings.TrimSpace(postalCode) + " " + strings.TrimSpace(city))
	if locality != "" {
		parts = append(parts, locality)
	}
	if v := strings.TrimSpace(country); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}
