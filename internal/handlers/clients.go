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
	"golang.org/x/crypto/bcrypt"

	"payetonkawa/internal/models"
)

type ClientCreateRequest struct {
	Nom       string           `json:"nom" binding:"required"`
	Email     string           `json:"email" binding:"required,email"`
	Telephone string           `json:"telephone"`
	Adresse   string           `json:"adresse"`
	Type      string           `json:"type"`
	Password  string           `json:"password" binding:"required,min=8"`
	Company   *RegisterCompany `json:"company"`
}

type ClientUpdateRequest struct {
	Nom       *string `json:"nom"`
	Email     *string `json:"email"`
	Telephone *string `json:"telephone"`
	Adresse   *string `json:"adresse"`
	Type      *string `json:"type"`
	Actif     *bool   `json:"actif"`
}

/*
GET /api/clients
- page + limit optional (defaults 1/10)
- search filters on nom and email
*/
func GetClients(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/clients"
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
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"nom": bson.M{"$regex": search, "$options": "i"}},
				{"email": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("clients").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "dateCreation", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("clients").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		clients := make([]models.Client, 0)
		if err := cursor.All(ctx, &clients); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d clients", route, len(clients))
		c.JSON(http.StatusOK, gin.H{
			"data":       clients,
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": totalPages(total, limit),
		})
	}
}

func GetClient(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var client models.Client
		if err := db.Collection("clients").FindOne(ctx, bson.M{"_id": clientID}).Decode(&client); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": client, "success": true})
	}
}

func CreateClient(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ClientCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		accountType, err := normalizeAccountType(req.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var entreprise *models.Entreprise
		if accountType == models.TypeProfessionnel && req.Company != nil {
			if err := validateProfessionnel(req.Company.Name, req.Company.Siret); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			entreprise = &models.Entreprise{
				Nom:   strings.TrimSpace(req.Company.Name),
				Siret: strings.TrimSpace(req.Company.Siret),
			}
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("clients").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		client := models.Client{
			Nom:          strings.TrimSpace(req.Nom),
			Email:        email,
			Telephone:    strings.TrimSpace(req.Telephone),
			Adresse:      strings.TrimSpace(req.Adresse),
			Type:         accountType,
			Entreprise:   entreprise,
			PasswordHash: string(hash),
			Actif:        true,
			DateCreation: time.Now(),
		}

		res, err := db.Collection("clients").InsertOne(ctx, client)
		if err != nil {
			log.Println("[CLIENT] [ERROR] create failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			client.ID = id
		}

		log.Println("[CLIENT] [INFO] client created:", email)
		c.JSON(http.StatusCreated, gin.H{"data": client, "success": true})
	}
}

func UpdateClient(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req ClientUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		set := bson.M{}
		if req.Nom != nil {
			set["nom"] = strings.TrimSpace(*req.Nom)
		}
		if req.Email != nil {
			set["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.Telephone != nil {
			set["telephone"] = strings.TrimSpace(*req.Telephone)
		}
		if req.Adresse != nil {
			set["adresse"] = strings.TrimSpace(*req.Adresse)
		}
		if req.Type != nil {
			accountType, err := normalizeAccountType(*req.Type)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			set["type"] = accountType
		}
		if req.Actif != nil {
			set["actif"] = *req.Actif
		}
		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("clients").UpdateByID(ctx, clientID, bson.M{"$set": set})
		if err != nil {
			log.Println("[CLIENT] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}

		var client models.Client
		if err := db.Collection("clients").FindOne(ctx, bson.M{"_id": clientID}).Decode(&client); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[CLIENT] [INFO] client updated:", clientID.Hex())
		c.JSON(http.StatusOK, gin.H{"data": client, "success": true})
	}
}

func DeleteClient(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("clients").DeleteOne(ctx, bson.M{"_id": clientID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}

		log.Println("[CLIENT] [INFO] client deleted:", clientID.Hex())
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "client deleted"})
	}
}
