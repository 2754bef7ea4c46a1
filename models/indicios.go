package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PMEnvolvido identifies one officer linked to a procedure
type PMEnvolvido struct {
	ID             string `json:"id" bson:"_id"`
	Nome           string `json:"nome" bson:"nome"`
	PostoGraduacao string `json:"posto_graduacao" bson:"posto_graduacao"`
	Matricula      string `json:"matricula" bson:"matricula"`
	Status         string `json:"status" bson:"status"` // "Acusado", "Indiciado", "Sindicado", "Investigado"
}

// CrimeRef is a crime reference attached to an officer's indícios
type CrimeRef struct {
	ID    string `json:"id" bson:"id"`
	Texto string `json:"texto" bson:"texto"`
}

// RDPMRef is a disciplinary code reference attached to an officer's indícios
type RDPMRef struct {
	ID        string `json:"id" bson:"id"`
	Texto     string `json:"texto" bson:"texto"`
	Gravidade string `json:"gravidade,omitempty" bson:"gravidade,omitempty"`
}

// Art29Ref is a statute (Art. 29) reference attached to an officer's indícios
type Art29Ref struct {
	ID    string `json:"id" bson:"id"`
	Texto string `json:"texto" bson:"texto"`
}

// Indicios holds the evidence tags of a single officer involvement
type Indicios struct {
	Categorias []string   `json:"categorias" bson:"categorias"`
	Crimes     []CrimeRef `json:"crimes" bson:"crimes"`
	RDPM       []RDPMRef  `json:"rdpm" bson:"rdpm"`
	Art29      []Art29Ref `json:"art29" bson:"art29"`
}

// Empty reports whether no tag of any kind is set
func (i Indicios) Empty() bool {
	return len(i.Categorias) == 0 && len(i.Crimes) == 0 && len(i.RDPM) == 0 && len(i.Art29) == 0
}

// IndiciosPM holds the structure for the indicios collection in mongo
type IndiciosPM struct {
	PMEnvolvidoID string             `json:"pm_envolvido_id" bson:"_id"`
	Indicios      Indicios           `json:"indicios" bson:"indicios"`
	UpdatedAt     primitive.DateTime `json:"updated_at" bson:"updated_at"`
}

// CategoriasSugeridas are the suggested evidence categories offered when the
// indícios modal opens
var CategoriasSugeridas = []string{
	"Indícios de crime comum",
	"Indícios de crime militar",
	"Indícios de transgressão disciplinar",
	"Indícios de infração ao Art. 29",
	"Não houve indícios",
}
