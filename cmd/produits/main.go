package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"payetonkawa/internal/config"
	"payetonkawa/internal/database"
	"payetonkawa/internal/handlers"
	"payetonkawa/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProduitIndexes(db); err != nil {
		log.Printf("produit index warning: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/health", handlers.Health("produits", db))

	r.GET("/api/produits", handlers.GetProduits(db))
	r.GET("/api/produits/:id", handlers.GetProduit(db))

	protected := r.Group("/api/produits")
	protected.Use(middleware.Auth(config.AppEnv.JWTSecret))
	{
		protected.POST("", handlers.CreateProduit(db))
		protected.PUT("/:id", handlers.UpdateProduit(db))
		protected.DELETE("/:id", handlers.DeleteProduit(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}
	r.Run(":" + port)
}
