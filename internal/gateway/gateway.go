// Package gateway composes the session store, the domain services and the
// catalog derivations into the storefront and back-office route surfaces.
// Every page fetch is scoped to its own request, so a stale response can
// never overwrite a newer one.
package gateway

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"payetonkawa/internal/apiclient"
	"payetonkawa/internal/middleware"
	"payetonkawa/internal/models"
	"payetonkawa/internal/services"
	"payetonkawa/internal/session"
)

// catalogPageLimit bounds how much of the catalog one backend page pulls in.
const catalogPageLimit = 500

type Gateway struct {
	Session   *session.Store
	API       *apiclient.Client
	Clients   *services.Clients
	Produits  *services.Produits
	Commandes *services.Commandes
	Panier    *Panier
}

func New(store *session.Store, api *apiclient.Client) *Gateway {
	return &Gateway{
		Session:   store,
		API:       api,
		Clients:   services.NewClients(api),
		Produits:  services.NewProduits(api),
		Commandes: services.NewCommandes(api),
		Panier:    NewPanier(),
	}
}

// respondFetchError maps a failed backend call onto the page result: a 401
// has already torn the session down, so the caller lands back on the entry
// route; anything else is a generic service failure scoped to this page.
func respondFetchError(c *gin.Context, err error) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}

	log.Printf("[GATEWAY] [ERROR] request %s fetch failed: %v", middleware.GetRequestID(c), err)
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "service indisponible"})
}

// fetchCatalogue pages through the product list until the service reports no
// further pages, so a catalog larger than one backend page is never silently
// truncated.
func (g *Gateway) fetchCatalogue(ctx context.Context) ([]models.Produit, error) {
	produits := make([]models.Produit, 0, catalogPageLimit)
	for page := int64(1); ; page++ {
		resp, err := g.Produits.List(ctx, page, catalogPageLimit)
		if err != nil {
			return nil, err
		}
		produits = append(produits, resp.Data...)
		if page >= resp.TotalPages || len(resp.Data) == 0 {
			return produits, nil
		}
	}
}
