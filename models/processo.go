package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Processo holds the structure for the processos collection in mongo. It is
// also the case record consumed by the monthly map.
type Processo struct {
	ID                 string             `json:"id" bson:"_id"`
	Numero             string             `json:"numero" bson:"numero"`
	Ano                int                `json:"ano" bson:"ano"`
	Tipo               string             `json:"tipo" bson:"tipo"` // "IPM", "SR", "PADS", "FP", "CD", "CJ"
	Responsavel        string             `json:"responsavel" bson:"responsavel"`
	PMsEnvolvidos      []PMEnvolvido      `json:"pms_envolvidos" bson:"pms_envolvidos"`
	ResumoFatos        string             `json:"resumo_fatos" bson:"resumo_fatos"`
	Conclusao          *Conclusao         `json:"conclusao,omitempty" bson:"conclusao,omitempty"`
	UltimaMovimentacao *Movimentacao      `json:"ultima_movimentacao,omitempty" bson:"ultima_movimentacao,omitempty"`
	Status             string             `json:"status" bson:"status"`
	Concluido          bool               `json:"concluido" bson:"concluido"`
	DataInstauracao    primitive.DateTime `json:"data_instauracao" bson:"data_instauracao"`
	DataConclusao      primitive.DateTime `json:"data_conclusao,omitempty" bson:"data_conclusao,omitempty"`
}

// Conclusao holds the completion details of a procedure
type Conclusao struct {
	Data       string `json:"data" bson:"data"`
	Solucao    string `json:"solucao" bson:"solucao"`
	Penalidade string `json:"penalidade,omitempty" bson:"penalidade,omitempty"`
}

// Movimentacao holds the last recorded movement of a procedure
type Movimentacao struct {
	Data      string `json:"data" bson:"data"`
	Descricao string `json:"descricao" bson:"descricao"`
	Destino   string `json:"destino,omitempty" bson:"destino,omitempty"`
}
