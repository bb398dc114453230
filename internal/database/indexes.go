package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureClientIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("clients").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureClientIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureClientIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureClientIndexes: email_unique index created")
	return nil
}

func EnsureProduitIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("produits").Indexes()

	origineIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "origine", Value: 1}},
		Options: options.Index().SetName("origine_index"),
	}

	log.Println("EnsureProduitIndexes: creating origine_index")
	_, err := indexes.CreateOne(ctx, origineIndex)
	if err != nil {
		log.Println("EnsureProduitIndexes: origine index error:", err)
		return err
	}
	log.Println("EnsureProduitIndexes: origine_index created")
	return nil
}

func EnsureCommandeIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("commandes").Indexes()

	clientIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "clientId", Value: 1}},
		Options: options.Index().SetName("clientId_index"),
	}

	log.Println("EnsureCommandeIndexes: creating clientId_index")
	_, err := indexes.CreateOne(ctx, clientIDIndex)
	if err != nil {
		log.Println("EnsureCommandeIndexes: clientId index error:", err)
		return err
	}
	log.Println("EnsureCommandeIndexes: clientId_index created")
	return nil
}
