// Package printer renders drawer results for a terminal.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cashier-api/internal/models"
	"cashier-api/internal/money"
)

type styles struct {
	label   lipgloss.Style
	value   lipgloss.Style
	bold    lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
}

// Printer writes receipts with colors when the writer is a terminal and
// plain text otherwise.
type Printer struct {
	w io.Writer
	s styles
}

func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		s: styles{
			label:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			value:   r.NewStyle().Foreground(lipgloss.Color("15")),
			bold:    r.NewStyle().Bold(true),
			muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
			warning: r.NewStyle().Foreground(lipgloss.Color("11")),
			danger:  r.NewStyle().Foreground(lipgloss.Color("9")),
		},
	}
}

func euro(c money.Cents) string {
	return c.String() + "€"
}

// Settlement prints the receipt for one settle call.
func (p *Printer) Settlement(res models.Settlement) error {
	var b strings.Builder
	b.WriteString("\n")

	switch res.Outcome {
	case models.OutcomeInsufficientPayment:
		b.WriteString(p.s.warning.Render("The money paid is not enough."))
		b.WriteString("\n")
		b.WriteString(p.s.warning.Render("Customer should pay "))
		b.WriteString(p.s.danger.Render(euro(res.Shortfall)))
		b.WriteString(" ")
		b.WriteString(p.s.warning.Bold(true).Render("more."))
		b.WriteString("\n")

	case models.OutcomeInsufficientChange:
		b.WriteString(p.s.danger.Render("No change available."))
		b.WriteString("\n")
		b.WriteString(p.s.danger.Render("Please provide a smaller quantity to pay your bill."))
		b.WriteString("\n")
		b.WriteString(p.s.muted.Render("Missing: " + euro(res.Remainder)))
		b.WriteString("\n")

	default:
		p.line(&b, "Price: ", euro(res.Price))
		p.line(&b, "Paid: ", euro(res.Paid))
		p.line(&b, "Change: ", euro(res.Change))
		b.WriteString("\n")
		b.WriteString(p.s.bold.Render("Change details: "))
		b.WriteString("\n\n")
		for _, l := range res.Breakdown {
			b.WriteString(p.s.bold.Render(fmt.Sprintf("   • %s Euro:", l.Denomination.Label())))
			b.WriteString(" ")
			b.WriteString(p.s.muted.Render(fmt.Sprint(l.Count)))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// Inventory prints what is left in the drawer.
func (p *Printer) Inventory(slots []models.DrawerSlot, total money.Cents) error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(p.s.bold.Render("Drawer: "))
	b.WriteString("\n\n")
	for _, s := range slots {
		b.WriteString(p.s.bold.Render(fmt.Sprintf("   • %s Euro:", s.Denomination.Label())))
		b.WriteString(" ")
		b.WriteString(p.s.muted.Render(fmt.Sprint(s.Count)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	p.line(&b, "Total: ", euro(total))

	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) line(b *strings.Builder, label, value string) {
	b.WriteString(p.s.label.Render(label))
	b.WriteString(p.s.value.Render(value))
	b.WriteString("\n")
}
