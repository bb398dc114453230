package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"payetonkawa/internal/models"
)

type ligneCommandeRequest struct {
	ProduitID string `json:"produitId" binding:"required"`
	Quantite  int    `json:"quantite" binding:"required"`
}

type commandeCreateRequest struct {
	Produits         []ligneCommandeRequest `json:"produits" binding:"required"`
	AdresseLivraison string                 `json:"adresseLivraison" binding:"required"`
}

type commandeUpdateRequest struct {
	Statut           *string `json:"statut"`
	AdresseLivraison *string `json:"adresseLivraison"`
}

/*
GET /api/commandes
- page + limit optional (defaults 1/10)
- clientId and statut are exact-match filters
*/
func GetCommandes(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/commandes"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		filter := bson.M{}
		if clientID := strings.TrimSpace(c.Query("clientId")); clientID != "" {
			id, err := primitive.ObjectIDFromHex(clientID)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid clientId")
				return
			}
			filter["clientId"] = id
		}
		if statut := strings.TrimSpace(c.Query("statut")); statut != "" {
			if !models.StatutValide(statut) {
				respondWithError(c, http.StatusBadRequest, route, "invalid statut")
				return
			}
			filter["statut"] = statut
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("commandes").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "dateCommande", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("commandes").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		commandes := make([]models.Commande, 0)
		if err := cursor.All(ctx, &commandes); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d commandes", route, len(commandes))
		c.JSON(http.StatusOK, gin.H{
			"data":       commandes,
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": totalPages(total, limit),
		})
	}
}

func GetCommande(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		commandeID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var commande models.Commande
		if err := db.Collection("commandes").FindOne(ctx, bson.M{"_id": commandeID}).Decode(&commande); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "commande not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": commande, "success": true})
	}
}

// CreateCommande prices every line from the current catalog and decrements
// stock inside one transaction. The total is always computed here, never
// trusted from the caller.
func CreateCommande(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/commandes"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req commandeCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		clientIDValue, ok := c.Get("clientId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		clientID := clientIDValue.(primitive.ObjectID)

		commande, err := buildCommandeFromRequest(req, clientID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		dbSession, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer dbSession.EndSession(ctx)

		var commandeID primitive.ObjectID
		_, err = dbSession.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			lignes := make([]models.LigneCommande, 0, len(commande.Produits))
			total := 0.0

			for _, ligne := range commande.Produits {
				var produit models.Produit
				err := db.Collection("produits").FindOne(
					sessCtx,
					bson.M{"_id": ligne.ProduitID, "actif": true},
				).Decode(&produit)
				if err == mongo.ErrNoDocuments {
					return nil, produitNotFoundError{ProduitID: ligne.ProduitID}
				}
				if err != nil {
					return nil, err
				}

				if produit.Stock < ligne.Quantite {
					return nil, stockInsuffisantError{
						ProduitID: ligne.ProduitID,
						Available: produit.Stock,
						Requested: ligne.Quantite,
					}
				}

				lignes = append(lignes, models.LigneCommande{
					ProduitID:    ligne.ProduitID,
					Quantite:     ligne.Quantite,
					PrixUnitaire: produit.Prix,
				})
				total += produit.Prix * float64(ligne.Quantite)

				filter := bson.M{
					"_id":   ligne.ProduitID,
					"stock": bson.M{"$gte": ligne.Quantite},
				}
				update := bson.M{"$inc": bson.M{"stock": -ligne.Quantite}}

				res, err := db.Collection("produits").UpdateOne(sessCtx, filter, update)
				if err != nil {
					return nil, err
				}
				if res.MatchedCount == 0 {
					return nil, stockInsuffisantError{
						ProduitID: ligne.ProduitID,
						Available: produit.Stock,
						Requested: ligne.Quantite,
					}
				}
			}

			commande.Produits = lignes
			commande.Total = total

			res, err := db.Collection("commandes").InsertOne(sessCtx, commande)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				commandeID = id
			}
			return nil, nil
		})
		if err != nil {
			var stockErr stockInsuffisantError
			if errors.As(err, &stockErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "stock insuffisant",
					"produitId": stockErr.ProduitID.Hex(),
					"available": stockErr.Available,
					"requested": stockErr.Requested,
				})
				return
			}
			var notFoundErr produitNotFoundError
			if errors.As(err, &notFoundErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "produit introuvable",
					"produitId": notFoundErr.ProduitID.Hex(),
				})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !commandeID.IsZero() {
			commande.ID = commandeID
		}

		log.Println("[COMMANDE] [INFO] commande created for client:", clientID.Hex())
		c.JSON(http.StatusCreated, gin.H{"data": commande, "success": true})
	}
}

func UpdateCommande(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		commandeID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req commandeUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		set := bson.M{}
		if req.Statut != nil {
			statut := strings.TrimSpace(*req.Statut)
			if !models.StatutValide(statut) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid statut"})
				return
			}
			set["statut"] = statut
			if statut == models.StatutLivree {
				set["dateLivraison"] = time.Now()
			}
		}
		if req.AdresseLivraison != nil {
			set["adresseLivraison"] = strings.TrimSpace(*req.AdresseLivraison)
		}
		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("commandes").UpdateByID(ctx, commandeID, bson.M{"$set": set})
		if err != nil {
			log.Println("[COMMANDE] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "commande not found"})
			return
		}

		var commande models.Commande
		if err := db.Collection("commandes").FindOne(ctx, bson.M{"_id": commandeID}).Decode(&commande); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[COMMANDE] [INFO] commande updated:", commandeID.Hex())
		c.JSON(http.StatusOK, gin.H{"data": commande, "success": true})
	}
}

func DeleteCommande(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		commandeID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("commandes").DeleteOne(ctx, bson.M{"_id": commandeID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "commande not found"})
			return
		}

		log.Println("[COMMANDE] [INFO] commande deleted:", commandeID.Hex())
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "commande deleted"})
	}
}

/*
GET /api/commandes/stats
- dashboard aggregate: counts, revenue excluding cancelled orders, and the
  five most recent orders
*/
func GetStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/commandes/stats"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		totalCommandes, err := db.Collection("commandes").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		totalClients, err := db.Collection("clients").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		totalProduits, err := db.Collection("produits").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"statut": bson.M{"$ne": models.StatutAnnulee}}}},
			{{Key: "$group", Value: bson.M{
				"_id":   nil,
				"total": bson.M{"$sum": "$total"},
			}}},
		}

		cursor, err := db.Collection("commandes").Aggregate(ctx, pipeline)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		chiffreAffaires := 0.0
		var aggregated []struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.All(ctx, &aggregated); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if len(aggregated) > 0 {
			chiffreAffaires = aggregated[0].Total
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "dateCommande", Value: -1}}).
			SetLimit(5)

		recentCursor, err := db.Collection("commandes").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer recentCursor.Close(ctx)

		recentes := make([]models.Commande, 0, 5)
		if err := recentCursor.All(ctx, &recentes); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		stats := models.StatsTableauDeBord{
			TotalClients:      totalClients,
			TotalProduits:     totalProduits,
			TotalCommandes:    totalCommandes,
			ChiffreAffaires:   chiffreAffaires,
			CommandesRecentes: recentes,
		}

		c.JSON(http.StatusOK, gin.H{"data": stats, "success": true})
	}
}

func buildCommandeFromRequest(req commandeCreateRequest, clientID primitive.ObjectID) (models.Commande, error) {
	if len(req.Produits) == 0 {
		return models.Commande{}, errors.New("at least one produit is required")
	}
	if strings.TrimSpace(req.AdresseLivraison) == "" {
		return models.Commande{}, errors.New("adresseLivraison is required")
	}

	lignes := make([]models.LigneCommande, 0, len(req.Produits))
	for _, ligne := range req.Produits {
		produitID, err := primitive.ObjectIDFromHex(ligne.ProduitID)
		if err != nil {
			return models.Commande{}, errors.New("invalid produitId")
		}
		if ligne.Quantite <= 0 {
			return models.Commande{}, errors.New("quantite must be greater than zero")
		}
		lignes = append(lignes, models.LigneCommande{
			ProduitID: produitID,
			Quantite:  ligne.Quantite,
		})
	}

	return models.Commande{
		ClientID:         clientID,
		Produits:         lignes,
		Statut:           models.StatutEnAttente,
		DateCommande:     time.Now(),
		AdresseLivraison: strings.TrimSpace(req.AdresseLivraison),
	}, nil
}

type stockInsuffisantError struct {
	ProduitID primitive.ObjectID
	Available int
	Requested int
}

func (e stockInsuffisantError) Error() string {
	return "produit out of stock"
}

type produitNotFoundError struct {
	ProduitID primitive.ObjectID
}

func (e produitNotFoundError) Error() string {
	return "produit not found"
}
