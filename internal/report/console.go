package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ruasdev/meta-ads-analyzer/internal/domain"
)

const lineWidth = 70

// RenderConsole escreve o relatório completo em texto, com seções por
// janela e valores em R$.
func RenderConsole(w io.Writer, rpt *domain.AnalysisReport) {
	if rpt == nil {
		fmt.Fprintln(w, "❌ Nenhum dado para analisar!")
		return
	}

	divider := strings.Repeat("=", lineWidth)

	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, "📈 RELATÓRIO COMPLETO DE PERFORMANCE - META ADS")
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "\n📍 DATA: %s\n", rpt.GeneratedAt.Format("02/01/2006 15:04"))
	fmt.Fprintf(w, "📁 ARQUIVO: %s (%d linhas)\n", rpt.SourceFile, rpt.RowCount)

	renderWindow(w, "🎯 HOJE", rpt.Window(domain.ReportWindowToday))
	renderWindow(w, "📅 ONTEM", rpt.Window(domain.ReportWindowYesterday))
	renderWindow(w, "📊 ÚLTIMOS DIAS", rpt.Window(domain.ReportWindowTrailing))
	renderWindow(w, "🗓️  ESTE MÊS", rpt.Window(domain.ReportWindowMonthToDate))
	renderWindow(w, "📚 TODO PERÍODO", rpt.Window(domain.ReportWindowAllRecords))

	if rpt.Variation != nil {
		fmt.Fprintln(w, "\n📉 VARIAÇÃO HOJE vs ONTEM:")
		fmt.Fprintln(w, strings.Repeat("-", 40))
		fmt.Fprintf(w, "   • Leads: %+.1f%%\n", rpt.Variation.LeadsPercent)
		fmt.Fprintf(w, "   • CAC: R$ %+.2f\n", rpt.Variation.CostPerLeadDiff)
		fmt.Fprintf(w, "   • Gasto: R$ %+.2f\n", rpt.Variation.SpendDiff)
	}

	if len(rpt.TopCampaigns) > 0 {
		fmt.Fprintf(w, "\n🏆 TOP %d CAMPANHAS (por Leads):\n", len(rpt.TopCampaigns))
		fmt.Fprintln(w, strings.Repeat("-", 40))
		for _, campaign := range rpt.TopCampaigns {
			fmt.Fprintf(w, "   %-30.30s | %.0f leads | CAC: R$ %.2f\n",
				campaign.Campaign, campaign.TotalLeads, campaign.CostPerLead)
		}
	}

	if rpt.Trend != nil {
		arrow := "➡️"
		switch rpt.Trend.Direction {
		case domain.TrendUp:
			arrow = "🔼"
		case domain.TrendDown:
			arrow = "🔽"
		}

		fmt.Fprintln(w, "\n📈 TENDÊNCIA (período recente vs anterior):")
		fmt.Fprintln(w, strings.Repeat("-", 40))
		fmt.Fprintf(w, "   • CAC: %s %+.1f%%\n", arrow, rpt.Trend.CostPerLeadChangePercent)
	}

	fmt.Fprintln(w, "\n💡 RECOMENDAÇÕES AUTOMÁTICAS:")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	if len(rpt.Recommendations) == 0 {
		fmt.Fprintln(w, "   • Sem recomendações para o período analisado")
	}
	for _, recommendation := range rpt.Recommendations {
		fmt.Fprintf(w, "   • %s\n", recommendation.Message)
	}

	if rpt.Projection != nil {
		// Extrapolação linear da média diária, não uma previsão
		fmt.Fprintln(w, "\n🔮 PROJEÇÃO MENSAL (baseada em média diária):")
		fmt.Fprintln(w, strings.Repeat("-", 40))
		fmt.Fprintf(w, "   • Leads/mês: %.0f\n", rpt.Projection.ProjectedLeads)
		fmt.Fprintf(w, "   • Gasto/mês: R$ %.2f\n", rpt.Projection.ProjectedSpend)
		fmt.Fprintf(w, "   • CAC estimado: R$ %.2f\n", rpt.Projection.ProjectedCostPerLead)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, "✅ RELATÓRIO GERADO COM SUCESSO!")
	fmt.Fprintln(w, divider)
}

func renderWindow(w io.Writer, title string, window *domain.Window) {
	fmt.Fprintf(w, "\n%s:\n", title)
	fmt.Fprintln(w, strings.Repeat("-", 40))

	if window.IsEmpty() {
		fmt.Fprintln(w, "   • Sem dados no período")
		return
	}

	fmt.Fprintf(w, "   • Dias analisados: %d\n", window.DayCount)
	fmt.Fprintf(w, "   • Gasto Total: R$ %.2f\n", window.TotalSpend)
	fmt.Fprintf(w, "   • Leads Total: %.0f\n", window.TotalLeads)
	fmt.Fprintf(w, "   • CAC Médio: R$ %.2f\n", window.CostPerLead)
	fmt.Fprintf(w, "   • CTR Médio: %.2f%%\n", window.CTRPercent)
	fmt.Fprintf(w, "   • Conversão: %.2f%%\n", window.ConversionRatePercent)
	fmt.Fprintf(w, "   • Média/dia: R$ %.2f | %.1f leads\n", window.DailyAvgSpend, window.DailyAvgLeads)
}

// RenderKeyMetrics monta o texto de métricas chave exportado para arquivo
func RenderKeyMetrics(rpt *domain.AnalysisReport) string {
	var b strings.Builder
	divider := strings.Repeat("=", 60)

	b.WriteString(divider + "\n")
	b.WriteString("📊 MÉTRICAS CHAVE META ADS\n")
	b.WriteString(divider + "\n\n")

	b.WriteString(fmt.Sprintf("Data da análise: %s\n", rpt.GeneratedAt.Format("02/01/2006 15:04")))
	b.WriteString(fmt.Sprintf("Arquivo analisado: %s\n\n", rpt.SourceFile))

	trailing := rpt.Window(domain.ReportWindowTrailing)
	b.WriteString("📈 PERÍODO RECENTE:\n")
	b.WriteString(fmt.Sprintf("• Gasto Total: R$ %.2f\n", trailing.TotalSpend))
	b.WriteString(fmt.Sprintf("• Leads Total: %.0f\n", trailing.TotalLeads))
	b.WriteString(fmt.Sprintf("• CAC Médio: R$ %.2f\n", trailing.CostPerLead))
	b.WriteString(fmt.Sprintf("• CTR Médio: %.2f%%\n", trailing.CTRPercent))
	b.WriteString(fmt.Sprintf("• Média/dia: %.1f leads\n\n", trailing.DailyAvgLeads))

	b.WriteString("🎯 RECOMENDAÇÕES:\n")
	if len(rpt.Recommendations) == 0 {
		b.WriteString("- Sem recomendações para o período analisado\n")
	}
	for _, recommendation := range rpt.Recommendations {
		b.WriteString(fmt.Sprintf("- %s\n", recommendation.Message))
	}

	if rpt.Projection != nil {
		b.WriteString(fmt.Sprintf("\n🔮 PROJEÇÃO (30 dias): %.0f leads | R$ %.2f\n",
			rpt.Projection.ProjectedLeads, rpt.Projection.ProjectedSpend))
	}

	return b.String()
}
