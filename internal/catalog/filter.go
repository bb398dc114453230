// Package catalog holds the pure product-list derivations used by the
// storefront pages. Nothing here mutates its input; results are recomputed
// from scratch on every call.
package catalog

import (
	"strings"

	"payetonkawa/internal/models"
)

// OrigineToutes is the sentinel matching every origin.
const OrigineToutes = "tous"

// Origines returns the distinct origins present in the list, in first-seen
// order, prefixed with the sentinel.
func Origines(produits []models.Produit) []string {
	origines := []string{OrigineToutes}
	seen := map[string]struct{}{}

	for _, produit := range produits {
		if _, ok := seen[produit.Origine]; ok {
			continue
		}
		seen[produit.Origine] = struct{}{}
		origines = append(origines, produit.Origine)
	}
	return origines
}

// Filtre is the filter state of a catalog page.
type Filtre struct {
	Recherche string
	Origine   string
	// PublicSeulement additionally requires active products with stock,
	// which is what the public storefront shows.
	PublicSeulement bool
}

// Filtrer returns the products whose nom or description contains the search
// text case-insensitively and whose origin matches the filter (or the
// sentinel). The source slice is never modified.
func Filtrer(produits []models.Produit, f Filtre) []models.Produit {
	recherche := strings.ToLower(strings.TrimSpace(f.Recherche))

	filtered := make([]models.Produit, 0, len(produits))
	for _, produit := range produits {
		if recherche != "" {
			nom := strings.ToLower(produit.Nom)
			description := strings.ToLower(produit.Description)
			if !strings.Contains(nom, recherche) && !strings.Contains(description, recherche) {
				continue
			}
		}

		if f.Origine != "" && f.Origine != OrigineToutes && produit.Origine != f.Origine {
			continue
		}

		if f.PublicSeulement && (!produit.Actif || produit.Stock <= 0) {
			continue
		}

		filtered = append(filtered, produit)
	}
	return filtered
}
