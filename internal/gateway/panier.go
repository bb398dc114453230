package gateway

import "sync"

// Panier is the in-memory shopping-cart stub. Counts never go below zero.
type Panier struct {
	mu    sync.Mutex
	items map[string]int
}

func NewPanier() *Panier {
	return &Panier{items: make(map[string]int)}
}

func (p *Panier) Ajouter(produitID string, quantite int) {
	if quantite <= 0 {
		quantite = 1
	}

	p.mu.Lock()
	p.items[produitID] += quantite
	p.mu.Unlock()
}

func (p *Panier) Retirer(produitID string, quantite int) {
	if quantite <= 0 {
		quantite = 1
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	reste := p.items[produitID] - quantite
	if reste <= 0 {
		delete(p.items, produitID)
		return
	}
	p.items[produitID] = reste
}

func (p *Panier) Compte(produitID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items[produitID]
}

// Total is the badge count shown in the storefront header.
func (p *Panier) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := 0
	for _, quantite := range p.items {
		total += quantite
	}
	return total
}

func (p *Panier) Contenu() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()

	contenu := make(map[string]int, len(p.items))
	for id, quantite := range p.items {
		contenu[id] = quantite
	}
	return contenu
}

func (p *Panier) Vider() {
	p.mu.Lock()
	p.items = make(map[string]int)
	p.mu.Unlock()
}
