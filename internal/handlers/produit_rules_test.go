package handlers

import "testing"

func TestValidateProduitFieldsRejectsNonPositivePrix(t *testing.T) {
	tests := []float64{0, -1}
	for _, prix := range tests {
		if err := validateProduitFields(prix, 10, 3); err == nil {
			t.Fatalf("expected validation error for prix=%v", prix)
		}
	}
}

func TestValidateProduitFieldsRejectsNegativeStock(t *testing.T) {
	if err := validateProduitFields(9.9, -1, 3); err == nil {
		t.Fatal("expected validation error for negative stock")
	}
}

func TestValidateProduitFieldsIntensiteBounds(t *testing.T) {
	tests := []struct {
		intensite int
		valid     bool
	}{
		{0, false},
		{1, true},
		{5, true},
		{6, false},
	}
	for _, tc := range tests {
		err := validateProduitFields(9.9, 10, tc.intensite)
		if tc.valid && err != nil {
			t.Fatalf("expected intensite=%d to be accepted, got %v", tc.intensite, err)
		}
		if !tc.valid && err == nil {
			t.Fatalf("expected intensite=%d to be rejected", tc.intensite)
		}
	}
}

func TestResolveProduitUpdateKeepsExistingValues(t *testing.T) {
	result, err := resolveProduitUpdate(12.5, 40, 4, produitUpdateInput{})
	if err != nil {
		t.Fatalf("resolveProduitUpdate returned error: %v", err)
	}
	if result.Prix != 12.5 || result.Stock != 40 || result.Intensite != 4 {
		t.Fatalf("expected existing values to be kept, got %+v", result)
	}
}

func TestResolveProduitUpdateAppliesPartialInput(t *testing.T) {
	stock := 0
	result, err := resolveProduitUpdate(12.5, 40, 4, produitUpdateInput{Stock: &stock})
	if err != nil {
		t.Fatalf("resolveProduitUpdate returned error: %v", err)
	}
	if result.Stock != 0 {
		t.Fatalf("expected stock=0, got %d", result.Stock)
	}
	if result.Prix != 12.5 || result.Intensite != 4 {
		t.Fatalf("expected untouched fields to be kept, got %+v", result)
	}
}

func TestResolveProduitUpdateValidatesResult(t *testing.T) {
	prix := -3.0
	if _, err := resolveProduitUpdate(12.5, 40, 4, produitUpdateInput{Prix: &prix}); err == nil {
		t.Fatal("expected validation error for negative prix update")
	}
}
