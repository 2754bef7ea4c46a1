package mapamensal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"Concluído", StatusConcluido},
		{"CONCLUIDO", StatusConcluido},
		{"concluído em 10/01/2025", StatusConcluido},
		{"Conclusão enviada", StatusConcluido},
		{"Em Andamento", StatusEmAndamento},
		{"Andamento", StatusEmAndamento},
		{"Arquivado", StatusEmAndamento},
		{"", StatusEmAndamento},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.status))
		})
	}
}

func TestNormalizeStatus_Idempotent(t *testing.T) {
	for _, s := range []string{"concluido", "Andamento", ""} {
		once := NormalizeStatus(s)
		assert.Equal(t, once, NormalizeStatus(once))
	}
}

func TestNomeArquivo(t *testing.T) {
	dia := time.Date(2025, time.April, 1, 6, 0, 0, 0, time.UTC)

	assert.Equal(t, "mapa_mensal_ipm_marco_2025_2025-04-01.pdf", NomeArquivo("Mapa Mensal - IPM - Março/2025", dia))
	assert.Equal(t, NomeArquivo("Mapa Mensal - IPM - Março/2025", dia), NomeArquivo("Mapa Mensal - IPM - Março/2025", dia))
	assert.Equal(t, "_2025-04-01.pdf", NomeArquivo("", dia))
}
