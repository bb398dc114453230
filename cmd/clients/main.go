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

	if err := database.EnsureClientIndexes(db); err != nil {
		log.Printf("client index warning: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/health", handlers.Health("clients", db))

	auth := r.Group("/payetonkawa/api/v1/auth")
	{
		auth.POST("/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
		auth.POST("/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))
	}

	r.GET("/api/clients", handlers.GetClients(db))
	r.GET("/api/clients/:id", handlers.GetClient(db))

	protected := r.Group("/api/clients")
	protected.Use(middleware.Auth(config.AppEnv.JWTSecret))
	{
		protected.POST("", handlers.CreateClient(db))
		protected.PUT("/:id", handlers.UpdateClient(db))
		protected.DELETE("/:id", handlers.DeleteClient(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	r.Run(":" + port)
}
