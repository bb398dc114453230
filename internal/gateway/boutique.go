package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"payetonkawa/internal/catalog"
	"payetonkawa/internal/services"
	"payetonkawa/internal/session"
)

// MountBoutique registers the storefront route surface.
func (g *Gateway) MountBoutique(r *gin.Engine) {
	r.GET("/", g.Accueil)
	r.GET("/boutique", g.BoutiquePage)
	r.GET("/produits", g.ProduitsPage)
	r.GET("/sante", g.Sante)

	r.POST("/auth/login", g.LoginAction)
	r.POST("/auth/register", g.RegisterAction)
	r.POST("/auth/logout", g.LogoutAction)
	r.GET("/auth/session", g.SessionState)

	r.GET("/panier", g.PanierPage)
	r.POST("/panier/:produitId", g.PanierAjouter)
	r.DELETE("/panier/:produitId", g.PanierRetirer)

	protected := r.Group("/", RequireSession(g.Session))
	{
		protected.GET("/dashboard", g.Dashboard)
		protected.GET("/mes-commandes", g.MesCommandes)
		protected.GET("/profil", g.Profil)
		protected.PUT("/profil", g.UpdateProfil)
	}
}

func (g *Gateway) Accueil(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":   "accueil",
		"user":   g.Session.User(),
		"panier": g.Panier.Total(),
	})
}

// BoutiquePage is the public catalog: search and origin filters on top of
// active, in-stock products only.
func (g *Gateway) BoutiquePage(c *gin.Context) {
	produits, err := g.fetchCatalogue(c.Request.Context())
	if err != nil {
		respondFetchError(c, err)
		return
	}

	filtre := catalog.Filtre{
		Recherche:       c.Query("recherche"),
		Origine:         c.Query("origine"),
		PublicSeulement: true,
	}

	c.JSON(http.StatusOK, gin.H{
		"produits": catalog.Filtrer(produits, filtre),
		"origines": catalog.Origines(produits),
		"panier":   g.Panier.Total(),
	})
}

// ProduitsPage is the full catalog view, inactive and out-of-stock
// products included.
func (g *Gateway) ProduitsPage(c *gin.Context) {
	produits, err := g.fetchCatalogue(c.Request.Context())
	if err != nil {
		respondFetchError(c, err)
		return
	}

	filtre := catalog.Filtre{
		Recherche: c.Query("recherche"),
		Origine:   c.Query("origine"),
	}

	c.JSON(http.StatusOK, gin.H{
		"produits": catalog.Filtrer(produits, filtre),
		"origines": catalog.Origines(produits),
	})
}

func (g *Gateway) Dashboard(c *gin.Context) {
	user, ok := g.currentUser(c)
	if !ok {
		return
	}

	resp, err := g.Commandes.ByClient(c.Request.Context(), user.ID)
	if err != nil {
		respondFetchError(c, err)
		return
	}

	totalDepense := 0.0
	for _, commande := range resp.Data {
		totalDepense += commande.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"user":           user,
		"totalCommandes": resp.Total,
		"totalDepense":   totalDepense,
		"commandes":      resp.Data,
	})
}

func (g *Gateway) MesCommandes(c *gin.Context) {
	user, ok := g.currentUser(c)
	if !ok {
		return
	}

	resp, err := g.Commandes.ByClient(c.Request.Context(), user.ID)
	if err != nil {
		respondFetchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"commandes": resp.Data, "total": resp.Total})
}

func (g *Gateway) Profil(c *gin.Context) {
	user, ok := g.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type profilUpdateRequest struct {
	Nom       *string `json:"nom"`
	Telephone *string `json:"telephone"`
	Adresse   *string `json:"adresse"`
}

func (g *Gateway) UpdateProfil(c *gin.Context) {
	user, ok := g.currentUser(c)
	if !ok {
		return
	}

	var req profilUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	updated, err := g.Clients.Update(c.Request.Context(), user.ID, req)
	if err != nil {
		respondFetchError(c, err)
		return
	}

	refreshed := *user
	refreshed.Nom = updated.Nom
	refreshed.Telephone = updated.Telephone
	refreshed.Adresse = updated.Adresse
	if err := g.Session.RefreshUser(refreshed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": refreshed})
}

type loginActionRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (g *Gateway) LoginAction(c *gin.Context) {
	var req loginActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	if err := g.Session.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": g.Session.User()})
}

type registerActionRequest struct {
	Prenom          string                   `json:"prenom" binding:"required"`
	Nom             string                   `json:"nom" binding:"required"`
	Email           string                   `json:"email" binding:"required"`
	Password        string                   `json:"password" binding:"required"`
	ConfirmPassword string                   `json:"confirmPassword" binding:"required"`
	Telephone       string                   `json:"telephone"`
	Type            string                   `json:"type"`
	Entreprise      string                   `json:"entreprise"`
	Siret           string                   `json:"siret"`
	Adresse         services.RegisterAddress `json:"adresse"`
}

func (g *Gateway) RegisterAction(c *gin.Context) {
	var req registerActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	form := session.Inscription{
		Prenom:          req.Prenom,
		Nom:             req.Nom,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Telephone:       req.Telephone,
		Type:            req.Type,
		Entreprise:      req.Entreprise,
		Siret:           req.Siret,
		Adresse:         req.Adresse,
	}

	if err := g.Session.Register(c.Request.Context(), form); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, session.ErrConnexion) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": g.Session.User()})
}

func (g *Gateway) LogoutAction(c *gin.Context) {
	g.Session.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "déconnecté"})
}

func (g *Gateway) SessionState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":       g.Session.User(),
		"hydrated":   g.Session.Hydrated(),
		"loginModal": g.Session.LoginModalOpen(),
	})
}

func (g *Gateway) Sante(c *gin.Context) {
	c.JSON(http.StatusOK, g.API.CheckHealth(c.Request.Context()))
}

func (g *Gateway) PanierPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": g.Panier.Contenu(),
		"total": g.Panier.Total(),
	})
}

func (g *Gateway) PanierAjouter(c *gin.Context) {
	g.Panier.Ajouter(c.Param("produitId"), 1)
	c.JSON(http.StatusOK, gin.H{"total": g.Panier.Total()})
}

func (g *Gateway) PanierRetirer(c *gin.Context) {
	g.Panier.Retirer(c.Param("produitId"), 1)
	c.JSON(http.StatusOK, gin.H{"total": g.Panier.Total()})
}
