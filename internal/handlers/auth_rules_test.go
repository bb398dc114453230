package handlers

import (
	"testing"

	"payetonkawa/internal/models"
)

func TestNormalizeAccountTypeDefaultsToParticulier(t *testing.T) {
	got, err := normalizeAccountType("")
	if err != nil {
		t.Fatalf("normalizeAccountType returned error: %v", err)
	}
	if got != models.TypeParticulier {
		t.Fatalf("expected %q, got %q", models.TypeParticulier, got)
	}
}

func TestNormalizeAccountTypeAcceptsAnyCasing(t *testing.T) {
	tests := map[string]string{
		"Particulier":     models.TypeParticulier,
		"particulier":     models.TypeParticulier,
		"PROFESSIONNEL":   models.TypeProfessionnel,
		"Professionnel":   models.TypeProfessionnel,
		"  professionnel": models.TypeProfessionnel,
	}
	for input, want := range tests {
		got, err := normalizeAccountType(input)
		if err != nil {
			t.Fatalf("normalizeAccountType(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("normalizeAccountType(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeAccountTypeRejectsUnknown(t *testing.T) {
	if _, err := normalizeAccountType("admin"); err == nil {
		t.Fatal("expected error for unknown account type")
	}
}

func TestValidateProfessionnelRequiresCompanyName(t *testing.T) {
	if err := validateProfessionnel("  ", "123456789"); err == nil {
		t.Fatal("expected error when company name is blank")
	}
}

func TestValidateProfessionnelSiretLength(t *testing.T) {
	tests := []struct {
		siret string
		valid bool
	}{
		{"12345678", false},
		{"123456789", true},
		{"12345678901234", true},
		{"123456789012345", false},
	}
	for _, tc := range tests {
		err := validateProfessionnel("Torrefaction SARL", tc.siret)
		if tc.valid && err != nil {
			t.Fatalf("expected siret %q to be accepted, got %v", tc.siret, err)
		}
		if !tc.valid && err == nil {
			t.Fatalf("expected siret %q to be rejected", tc.siret)
		}
	}
}

func TestValidateProfessionnelTrimsSiret(t *testing.T) {
	if err := validateProfessionnel("Torrefaction SARL", "  123456789  "); err != nil {
		t.Fatalf("expected trimmed siret to be accepted, got %v", err)
	}
}

func TestComposeAdresseJoinsNonEmptyParts(t *testing.T) {
	got := composeAdresse("12 rue des Lilas", "", "75011", "Paris", "France")
	want := "12 rue des Lilas, 75011 Paris, France"
	if got != want {
		t.Fatalf("composeAdresse = %q, want %q", got, want)
	}
}

func TestComposeAdresseKeepsSecondLine(t *testing.T) {
	got := composeAdresse("12 rue des Lilas", "Bat. B", "75011", "Paris", "France")
	want := "12 rue des Lilas, Bat. B, 75011 Paris, France"
	if got != want {
		t.Fatalf("composeAdresse = %q, want %q", got, want)
	}
}

func TestComposeAdresseAllEmpty(t *testing.T) {
	if got := composeAdresse("", "", "", "", ""); got != "" {
		t.Fatalf("expected empty address, got %q", got)
	}
}
