package handlers

import (
	"context"
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

type ProduitCreateRequest struct {
	Nom         string  `json:"nom" binding:"required"`
	Description string  `json:"description"`
	Prix        float64 `json:"prix" binding:"required"`
	Stock       int     `json:"stock"`
	Origine     string  `json:"origine" binding:"required"`
	Intensite   int     `json:"intensite" binding:"required"`
	Image       string  `json:"image"`
	Actif       *bool   `json:"actif"`
}

type ProduitUpdateRequest struct {
	Nom         *string  `json:"nom"`
	Description *string  `json:"description"`
	Prix        *float64 `json:"prix"`
	Stock       *int     `json:"stock"`
	Origine     *string  `json:"origine"`
	Intensite   *int     `json:"intensite"`
	Image       *string  `json:"image"`
	Actif       *bool    `json:"actif"`
}

/*
GET /api/produits
- page + limit optional (defaults 1/10)
- search filters on nom and description, origine is an exact match
*/
func GetProduits(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/produits"
		defer handlePanic(c, route)

		log.Printf(
			"[%s] hit page=%s limit=%s origine=%s search=%s",
			route,
			c.Query("page"),
			c.Query("limit"),
			c.Query("origine"),
			c.Query("search"),
		)

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
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"nom": bson.M{"$regex": search, "$options": "i"}},
				{"description": bson.M{"$regex": search, "$options": "i"}},
			}
		}
		if origine := strings.TrimSpace(c.Query("origine")); origine != "" {
			filter["origine"] = origine
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("produits").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "dateCreation", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("produits").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		produits := make([]models.Produit, 0)
		if err := cursor.All(ctx, &produits); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d produits", route, len(produits))
		c.JSON(http.StatusOK, gin.H{
			"data":       produits,
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": totalPages(total, limit),
		})
	}
}

func GetProduit(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		produitID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var produit models.Produit
		if err := db.Collection("produits").FindOne(ctx, bson.M{"_id": produitID}).Decode(&produit); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "produit not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": produit, "success": true})
	}
}

func CreateProduit(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProduitCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if err := validateProduitFields(req.Prix, req.Stock, req.Intensite); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actif := true
		if req.Actif != nil {
			actif = *req.Actif
		}

		produit := models.Produit{
			Nom:          strings.TrimSpace(req.Nom),
			Description:  strings.TrimSpace(req.Description),
			Prix:         req.Prix,
			Stock:        req.Stock,
			Origine:      strings.TrimSpace(req.Origine),
			Intensite:    req.Intensite,
			Image:        strings.TrimSpace(req.Image),
			Actif:        actif,
			DateCreation: time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("produits").InsertOne(ctx, produit)
		if err != nil {
			log.Println("[PRODUIT] [ERROR] create failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			produit.ID = id
		}

		log.Println("[PRODUIT] [INFO] produit created:", produit.Nom)
		c.JSON(http.StatusCreated, gin.H{"data": produit, "success": true})
	}
}

func UpdateProduit(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		produitID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req ProduitUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Produit
		if err := db.Collection("produits").FindOne(ctx, bson.M{"_id": produitID}).Decode(&existing); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "produit not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		resolved, err := resolveProduitUpdate(existing.Prix, existing.Stock, existing.Intensite, produitUpdateInput{
			Prix:      req.Prix,
			Stock:     req.Stock,
			Intensite: req.Intensite,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{
			"prix":      resolved.Prix,
			"stock":     resolved.Stock,
			"intensite": resolved.Intensite,
		}
		if req.Nom != nil {
			set["nom"] = strings.TrimSpace(*req.Nom)
		}
		if req.Description != nil {
			set["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Origine != nil {
			set["origine"] = strings.TrimSpace(*req.Origine)
		}
		if req.Image != nil {
			set["image"] = strings.TrimSpace(*req.Image)
		}
		if req.Actif != nil {
			set["actif"] = *req.Actif
		}

		if _, err := db.Collection("produits").UpdateByID(ctx, produitID, bson.M{"$set": set}); err != nil {
			log.Println("[PRODUIT] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		var produit models.Produit
		if err := db.Collection("produits").FindOne(ctx, bson.M{"_id": produitID}).Decode(&produit); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[PRODUIT] [INFO] produit updated:", produitID.Hex())
		c.JSON(http.StatusOK, gin.H{"data": produit, "success": true})
	}
}

// DeleteProduit deactivates rather than removes, so past order lines keep a
// resolvable product reference.
func DeleteProduit(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		produitID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("produits").UpdateByID(ctx, produitID, bson.M{
			"$set": bson.M{"actif": false},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "produit not found"})
			return
		}

		log.Println("[PRODUIT] [INFO] produit deactivated:", produitID.Hex())
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "produit deleted"})
	}
}
