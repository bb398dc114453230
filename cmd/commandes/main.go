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

	if err := database.EnsureCommandeIndexes(db); err != nil {
		log.Printf("commande index warning: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/health", handlers.Health("commandes", db))

	r.GET("/api/commandes/stats", handlers.GetStats(db))
	r.GET("/api/commandes", handlers.GetCommandes(db))
	r.GET("/api/commandes/:id", handlers.GetCommande(db))

	protected := r.Group("/api/commandes")
	protected.Use(middleware.Auth(config.AppEnv.JWTSecret))
	{
		protected.POST("", handlers.CreateCommande(db))
		protected.PUT("/:id", handlers.UpdateCommande(db))
		protected.DELETE("/:id", handlers.DeleteCommande(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}
	r.Run(":" + port)
}
