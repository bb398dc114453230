package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"payetonkawa/internal/apiclient"
	"payetonkawa/internal/config"
	"payetonkawa/internal/gateway"
	"payetonkawa/internal/middleware"
	"payetonkawa/internal/services"
	"payetonkawa/internal/session"
)

func main() {
	config.Load()

	storage := session.NewFileStorage(config.AppEnv.SessionDir)

	api := apiclient.New(apiclient.Config{
		ClientsURL:    config.AppEnv.ClientsURL,
		ProduitsURL:   config.AppEnv.ProduitsURL,
		CommandesURL:  config.AppEnv.CommandesURL,
		Timeout:       config.AppEnv.RequestTimeout,
		RetryAttempts: config.AppEnv.RetryAttempts,
	}, storage)

	auth := services.NewAuth(config.AppEnv.ClientsURL, config.AppEnv.RequestTimeout)
	store := session.NewStore(storage, auth)
	api.OnUnauthorized(store.HandleUnauthorized)

	store.Hydrate()
	if user := store.User(); user != nil {
		log.Println("session restored for:", user.Email)
	}

	r := gin.Default()
	r.Use(middleware.RequestID())

	gw := gateway.New(store, api)
	gw.MountBoutique(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	r.Run(":" + port)
}
