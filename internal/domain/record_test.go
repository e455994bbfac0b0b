package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Enrich(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected EnrichedRecord
	}{
		{
			name:   "Linha completa - todas as métricas derivadas calculadas",
			record: Record{Spend: 100, Leads: 4, Clicks: 50, Impressions: 1000},
			expected: EnrichedRecord{
				Record:                Record{Spend: 100, Leads: 4, Clicks: 50, Impressions: 1000},
				CostPerLead:           25,
				CTRPercent:            5,
				ConversionRatePercent: 8,
			},
		},
		{
			name:   "Sem leads - CAC zero, conversão calculada",
			record: Record{Spend: 100, Leads: 0, Clicks: 50, Impressions: 1000},
			expected: EnrichedRecord{
				Record:     Record{Spend: 100, Leads: 0, Clicks: 50, Impressions: 1000},
				CTRPercent: 5,
			},
		},
		{
			name:   "Sem impressões mas com cliques - CTR zero, não erro",
			record: Record{Spend: 10, Leads: 1, Clicks: 5, Impressions: 0},
			expected: EnrichedRecord{
				Record:                Record{Spend: 10, Leads: 1, Clicks: 5, Impressions: 0},
				CostPerLead:           10,
				ConversionRatePercent: 20,
			},
		},
		{
			name:     "Linha toda zero - métricas todas zero",
			record:   Record{},
			expected: EnrichedRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.Enrich())
		})
	}
}

func TestRecord_HasDate(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, Record{Date: &date}.HasDate())
	assert.False(t, Record{}.HasDate())
}

func TestEnrichRecords(t *testing.T) {
	records := []Record{
		{Spend: 50, Leads: 2},
		{Spend: 30, Leads: 0},
	}

	enriched := EnrichRecords(records)

	assert.Len(t, enriched, 2)
	assert.Equal(t, 25.0, enriched[0].CostPerLead)
	assert.Equal(t, 0.0, enriched[1].CostPerLead)
}
