// Package report turns an aggregated run into the text printed on stdout.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"screentime/entity"
)

const appIndent = "  "

type Options struct {
	BookHours float64
	// Detailed lists the apps under each category.
	Detailed bool
}

func DefaultOptions() Options {
	return Options{BookHours: 10}
}

// Render formats r. The only value computed here is the books-read sentence.
func Render(r entity.Report, opts Options) string {
	if opts.BookHours <= 0 {
		opts.BookHours = DefaultOptions().BookHours
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n--- Relatório de Uso de Tela (Últimos %d Dias) ---\n", r.Window.Days)
	fmt.Fprintf(&b, "Tempo Total de Tela (Estimativa): %.2f horas\n", r.TotalScreenTimeHours)

	b.WriteString("\nTempo Total de Execução de Processos por Categoria:\n")
	width := columnWidth(r, opts.Detailed)
	cell := lipgloss.NewStyle().Width(width)
	appCell := lipgloss.NewStyle().Width(width - len(appIndent))
	for _, ct := range r.CategoryTotals {
		fmt.Fprintf(&b, "%s%.2f\n", cell.Render(ct.Category.Label()), entity.Round2(ct.Hours))
		if !opts.Detailed {
			continue
		}
		for _, at := range r.AppBreakdown {
			if at.Category != ct.Category {
				continue
			}
			fmt.Fprintf(&b, "%s%s%.2f\n", appIndent, appCell.Render(at.App), entity.Round2(at.Hours))
		}
	}

	fmt.Fprintf(&b, "\nVocê poderia ter lido %.2f livros de %g horas com o tempo gasto em jogos e navegação.\n",
		r.BooksRead(opts.BookHours), opts.BookHours)
	return b.String()
}

func Write(w io.Writer, r entity.Report, opts Options) error {
	_, err := io.WriteString(w, Render(r, opts))
	return err
}

func columnWidth(r entity.Report, detailed bool) int {
	width := 0
	for _, ct := range r.CategoryTotals {
		width = max(width, lipgloss.Width(ct.Category.Label()))
	}
	if detailed {
		for _, at := range r.AppBreakdown {
			width = max(width, len(appIndent)+lipgloss.Width(at.App))
		}
	}
	return width + 4
}
