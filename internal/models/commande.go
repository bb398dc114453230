package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatutEnAttente     = "en_attente"
	StatutConfirmee     = "confirmee"
	StatutEnPreparation = "en_preparation"
	StatutExpediee      = "expediee"
	StatutLivree        = "livree"
	StatutAnnulee       = "annulee"
)

// LigneCommande is a single product entry within an order. The unit price is
// frozen at order time so later catalog changes never alter past totals.
type LigneCommande struct {
	ProduitID    primitive.ObjectID `bson:"produitId" json:"produitId"`
	Quantite     int                `bson:"quantite" json:"quantite"`
	PrixUnitaire float64            `bson:"prixUnitaire" json:"prixUnitaire"`
}

type Commande struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID         primitive.ObjectID `bson:"clientId" json:"clientId"`
	Produits         []LigneCommande    `bson:"produits" json:"produits"`
	Statut           string             `bson:"statut" json:"statut"`
	Total            float64            `bson:"total" json:"total"`
	DateCommande     time.Time          `bson:"dateCommande" json:"dateCommande"`
	DateLivraison    *time.Time         `bson:"dateLivraison,omitempty" json:"dateLivraison,omitempty"`
	AdresseLivraison string             `bson:"adresseLivraison" json:"adresseLivraison"`
}

// StatutValide reports whether s is one of the known order statuses.
func StatutValide(s string) bool {
	switch s {
	case StatutEnAttente, StatutConfirmee, StatutEnPreparation,
		StatutExpediee, StatutLivree, StatutAnnulee:
		return true
	}
	return false
}
