package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MetaMapa carries the aggregate fields returned with a monthly map
type MetaMapa struct {
	Mes              int    `json:"mes" bson:"mes"`
	Ano              int    `json:"ano" bson:"ano"`
	TipoProcesso     string `json:"tipo_processo" bson:"tipo_processo"`
	PeriodoDescricao string `json:"periodo_descricao" bson:"periodo_descricao"`
	TotalProcessos   int    `json:"total_processos" bson:"total_processos"`
	TotalConcluidos  int    `json:"total_concluidos" bson:"total_concluidos"`
	TotalEmAndamento int    `json:"total_andamento" bson:"total_andamento"`
	DataGeracao      string `json:"data_geracao,omitempty" bson:"data_geracao,omitempty"`
}

// DadosMapa is the payload of a generated or saved monthly map
type DadosMapa struct {
	Dados []Processo `json:"dados" bson:"dados"`
	Meta  MetaMapa   `json:"meta" bson:"meta"`
}

// MapaSalvo holds the structure for the mapas_mensais collection in mongo
type MapaSalvo struct {
	ID               string             `json:"id" bson:"_id"`
	TipoProcesso     string             `json:"tipo_processo" bson:"tipo_processo"`
	Mes              int                `json:"mes" bson:"mes"`
	Ano              int                `json:"ano" bson:"ano"`
	PeriodoDescricao string             `json:"periodo_descricao" bson:"periodo_descricao"`
	DataCriacao      primitive.DateTime `json:"data_criacao" bson:"data_criacao"`
	Dados            *DadosMapa         `json:"dados,omitempty" bson:"dados,omitempty"`
}

// MapaResumo is the listing entry for a previously saved monthly map
type MapaResumo struct {
	ID               string `json:"id" bson:"_id"`
	TipoProcesso     string `json:"tipo_processo" bson:"tipo_processo"`
	PeriodoDescricao string `json:"periodo_descricao" bson:"periodo_descricao"`
	DataCriacao      string `json:"data_criacao" bson:"-"`
}
