package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Produit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nom          string             `bson:"nom" json:"nom"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Prix         float64            `bson:"prix" json:"prix"`
	Stock        int                `bson:"stock" json:"stock"`
	Origine      string             `bson:"origine" json:"origine"`
	Intensite    int                `bson:"intensite" json:"intensite"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Actif        bool               `bson:"actif" json:"actif"`
	DateCreation time.Time          `bson:"dateCreation" json:"dateCreation"`
}
