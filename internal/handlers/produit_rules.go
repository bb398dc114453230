package handlers

import "fmt"

type produitUpdateInput struct {
	Prix      *float64
	Stock     *int
	Intensite *int
}

type produitUpdateResult struct {
	Prix      float64
	Stock     int
	Intensite int
}

func validateProduitFields(prix float64, stock, intensite int) error {
	if prix <= 0 {
		return fmt.Errorf("prix must be greater than 0")
	}
	if stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	if intensite < 1 || intensite > 5 {
		return fmt.Errorf("intensite must be between 1 and 5")
	}
	return nil
}

func resolveProduitUpdate(existingPrix float64, existingStock, existingIntensite int, input produitUpdateInput) (produitUpdateResult, error) {
	result := produitUpdateResult{
		Prix:      existingPrix,
		Stock:     existingStock,
		Intensite: existingIntensite,
	}

	if input.Prix != nil {
		result.Prix = *input.Prix
	}
	if input.Stock != nil {
		result.Stock = *input.Stock
	}
	if input.Intensite != nil {
		result.Intensite = *input.Intensite
	}

	if err := validateProduitFields(result.Prix, result.Stock, result.Intensite); err != nil {
		return produitUpdateResult{}, err
	}

	return result, nil
}
