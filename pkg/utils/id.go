package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewRunID gera um identificador curto para uma execução da análise.
// Falha de geração vira ID vazio; o relatório continua válido sem ele.
func NewRunID() string {
	id, err := gonanoid.Generate(characters, 8)
	if err != nil {
		return ""
	}
	return id
}
