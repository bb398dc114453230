package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TypeParticulier   = "particulier"
	TypeProfessionnel = "professionnel"
)

// Entreprise holds the company fields required for professional accounts.
type Entreprise struct {
	Nom   string `bson:"nom" json:"nom"`
	Siret string `bson:"siret" json:"siret"`
}

// Client is the stored customer account record.
type Client struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nom          string             `bson:"nom" json:"nom"`
	Email        string             `bson:"email" json:"email"`
	Telephone    string             `bson:"telephone,omitempty" json:"telephone,omitempty"`
	Adresse      string             `bson:"adresse,omitempty" json:"adresse,omitempty"`
	Type         string             `bson:"type" json:"type"`
	Entreprise   *Entreprise        `bson:"entreprise,omitempty" json:"entreprise,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Actif        bool               `bson:"actif" json:"actif"`
	DateCreation time.Time          `bson:"dateCreation" json:"dateCreation"`
}

// User is the session-facing view of a client, as returned by the auth
// endpoints and persisted in the session store.
type User struct {
	ID        string `json:"id"`
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone,omitempty"`
	Adresse   string `json:"adresse,omitempty"`
	Type      string `json:"type"`
}

// UserFromClient projects a stored client onto its session view.
func UserFromClient(c Client) User {
	return User{
		ID:        c.ID.Hex(),
		Nom:       c.Nom,
		Email:     c.Email,
		Telephone: c.Telephone,
		Adresse:   c.Adresse,
		Type:      c.Type,
	}
}
