package models

// Crime holds the structure for the crimes catalog collection in mongo
type Crime struct {
	ID               string `json:"id" bson:"_id"`
	Tipo             string `json:"tipo" bson:"tipo"` // "Código Penal", "Código Penal Militar", "Lei Especial"
	DispositivoLegal string `json:"dispositivo_legal" bson:"dispositivo_legal"`
	TextoCompleto    string `json:"texto_completo" bson:"texto_completo"`
	Ativo            bool   `json:"ativo" bson:"ativo"`
}

// Ref builds the reference stored on an officer's indícios
func (c Crime) Ref() CrimeRef {
	texto := c.DispositivoLegal
	if c.Tipo != "" {
		texto = c.Tipo + " - " + texto
	}
	if c.TextoCompleto != "" {
		texto += ": " + c.TextoCompleto
	}
	return CrimeRef{ID: c.ID, Texto: texto}
}

// Transgressao holds the structure for the RDPM catalog collection in mongo
type Transgressao struct {
	ID        string `json:"id" bson:"_id"`
	Inciso    string `json:"inciso" bson:"inciso"`
	Texto     string `json:"texto" bson:"texto"`
	Gravidade string `json:"gravidade" bson:"gravidade"` // "leve", "media", "grave"
	Ativo     bool   `json:"ativo" bson:"ativo"`
}

// Ref builds the reference stored on an officer's indícios
func (t Transgressao) Ref() RDPMRef {
	return RDPMRef{ID: t.ID, Texto: joinInciso(t.Inciso, t.Texto), Gravidade: t.Gravidade}
}

// InfracaoArt29 holds the structure for the Art. 29 catalog collection in mongo
type InfracaoArt29 struct {
	ID     string `json:"id" bson:"_id"`
	Inciso string `json:"inciso" bson:"inciso"`
	Texto  string `json:"texto" bson:"texto"`
	Ativo  bool   `json:"ativo" bson:"ativo"`
}

// Ref builds the reference stored on an officer's indícios
func (i InfracaoArt29) Ref() Art29Ref {
	return Art29Ref{ID: i.ID, Texto: joinInciso(i.Inciso, i.Texto)}
}

func joinInciso(inciso, texto string) string {
	if inciso == "" {
		return texto
	}
	return inciso + " - " + texto
}
