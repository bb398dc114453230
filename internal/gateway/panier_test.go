package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanierAjouterAccumulates(t *testing.T) {
	panier := NewPanier()

	panier.Ajouter("p1", 2)
	panier.Ajouter("p1", 3)
	panier.Ajouter("p2", 1)

	assert.Equal(t, 5, panier.Compte("p1"))
	assert.Equal(t, 1, panier.Compte("p2"))
	assert.Equal(t, 6, panier.Total())
}

func TestPanierAjouterDefaultsToOne(t *testing.T) {
	panier := NewPanier()

	panier.Ajouter("p1", 0)
	panier.Ajouter("p1", -4)

	assert.Equal(t, 2, panier.Compte("p1"))
}

func TestPanierRetirerNeverGoesNegative(t *testing.T) {
	panier := NewPanier()
	panier.Ajouter("p1", 2)

	panier.Retirer("p1", 5)

	assert.Equal(t, 0, panier.Compte("p1"))
	assert.Equal(t, 0, panier.Total())

	panier.Retirer("p1", 1)
	assert.Equal(t, 0, panier.Compte("p1"))
}

func TestPanierRetirerRemovesEmptyLines(t *testing.T) {
	panier := NewPanier()
	panier.Ajouter("p1", 1)
	panier.Ajouter("p2", 3)

	panier.Retirer("p1", 1)

	contenu := panier.Contenu()
	assert.NotContains(t, contenu, "p1")
	assert.Equal(t, 3, contenu["p2"])
}

func TestPanierContenuIsACopy(t *testing.T) {
	panier := NewPanier()
	panier.Ajouter("p1", 2)

	contenu := panier.Contenu()
	contenu["p1"] = 99

	assert.Equal(t, 2, panier.Compte("p1"))
}

func TestPanierVider(t *testing.T) {
	panier := NewPanier()
	panier.Ajouter("p1", 2)
	panier.Ajouter("p2", 1)

	panier.Vider()

	assert.Equal(t, 0, panier.Total())
	assert.Empty(t, panier.Contenu())
}
