package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Usuario holds the structure for the usuarios collection in mongo
type Usuario struct {
	ID        string             `json:"id" bson:"_id"`
	Nome      string             `json:"nome" bson:"nome"`
	Email     string             `json:"email" bson:"email"`
	Senha     string             `json:"-" bson:"senha"`
	Perfil    string             `json:"perfil" bson:"perfil"` // "admin", "operador", "consulta"
	Ativo     bool               `json:"ativo" bson:"ativo"`
	CreatedAt primitive.DateTime `json:"created_at" bson:"created_at"`
}
