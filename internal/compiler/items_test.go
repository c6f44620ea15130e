package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librogame/passomorto/internal/compiler"
	"github.com/librogame/passomorto/internal/entities"
)

func TestScanItemOffers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []entities.ItemOffer
	}{
		{
			name: "plain offer with article",
			text: "Puoi prendere la Corda.",
			want: []entities.ItemOffer{{Name: "Corda", Type: entities.ItemTypeGeneric}},
		},
		{
			name: "trailing courtesy phrase is stripped",
			text: "Puoi prendere la Lanterna se lo desideri.",
			want: []entities.ItemOffer{{Name: "Lanterna", Type: entities.ItemTypeGeneric}},
		},
		{
			name: "weapon subtype is routed to weapons",
			text: "Puoi prendere la Spada Corta/Arma da corpo a corpo.",
			want: []entities.ItemOffer{{Name: "Spada Corta/Arma da corpo a corpo", Type: entities.ItemTypeWeapon}},
		},
		{
			name: "multiple offers in one chapter",
			text: "Puoi prendere il Piede di Porco. Più avanti: Puoi prendere la Tenda Smontabile.",
			want: []entities.ItemOffer{
				{Name: "Piede di Porco", Type: entities.ItemTypeGeneric},
				{Name: "Tenda Smontabile", Type: entities.ItemTypeGeneric},
			},
		},
		{
			name: "no acquisition phrase",
			text: "La stanza è vuota.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compiler.ScanItemOffers(tt.text)
			require.Len(t, got, len(tt.want))
			assert.Equal(t, tt.want, got)
		})
	}
}
