package gateway

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"payetonkawa/internal/config"
)

// MountBackoffice registers the admin route surface. Every listing is a
// straight pass-through to the backend services with the page's own
// pagination and filters.
func (g *Gateway) MountBackoffice(r *gin.Engine) {
	r.GET("/", g.Analytics)
	r.GET("/clients", g.ClientsPage)
	r.GET("/produits", g.AdminProduitsPage)
	r.GET("/commandes", g.CommandesPage)
	r.GET("/analytics", g.Analytics)
	r.GET("/settings", g.Settings)
	r.GET("/sante", g.Sante)
}

func (g *Gateway) ClientsPage(c *gin.Context) {
	if search := c.Query("search"); search != "" {
		resp, err := g.Clients.Search(c.Request.Context(), search)
		if err != nil {
			respondFetchError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	page, limit := pageParams(c)
	resp, err := g.Clients.List(c.Request.Context(), page, limit)
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (g *Gateway) AdminProduitsPage(c *gin.Context) {
	if origine := c.Query("origine"); origine != "" {
		resp, err := g.Produits.ByOrigine(c.Request.Context(), origine)
		if err != nil {
			respondFetchError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	page, limit := pageParams(c)
	resp, err := g.Produits.List(c.Request.Context(), page, limit)
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (g *Gateway) CommandesPage(c *gin.Context) {
	if statut := c.Query("statut"); statut != "" {
		resp, err := g.Commandes.ByStatut(c.Request.Context(), statut)
		if err != nil {
			respondFetchError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	page, limit := pageParams(c)
	resp, err := g.Commandes.List(c.Request.Context(), page, limit)
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (g *Gateway) Analytics(c *gin.Context) {
	stats, err := g.Commandes.DashboardStats(c.Request.Context())
	if err != nil {
		respondFetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (g *Gateway) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services": gin.H{
			"clients":   config.AppEnv.ClientsURL,
			"produits":  config.AppEnv.ProduitsURL,
			"commandes": config.AppEnv.CommandesURL,
		},
		"timeout":       config.AppEnv.RequestTimeout.String(),
		"retryAttempts": config.AppEnv.RetryAttempts,
	})
}

func pageParams(c *gin.Context) (int64, int64) {
	page := int64(1)
	limit := int64(10)
	if v, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && v >= 1 {
		page = v
	}
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v >= 1 {
		limit = v
	}
	return page, limit
}
