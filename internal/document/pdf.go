package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/BruksfildServices01/rdv-service/internal/models"
)

const companyName = "Service Matériel Médical"

// RenderContract lays out the A4 contract sheet for c.
func RenderContract(c *models.Contract, issued time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Contrat %d", c.ID), true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// core fonts are cp1252; accents need translating
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(companyName), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Contrat de maintenance n° %d", c.ID)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Émis le "+issued.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.Ln(2)
	}
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr(value), "", "L", false)
	}

	section("Client")
	line("Cabinet", c.Cabinet)
	line("Adresse", c.Address)
	line("Ville", strings.TrimSpace(c.PostalCode+" "+c.City))
	pdf.Ln(4)

	section("Praticiens")
	if len(c.Praticiens) == 0 {
		pdf.CellFormat(0, 7, "-", "", 1, "L", false, 0, "")
	}
	for _, p := range c.Praticiens {
		pdf.CellFormat(0, 7, tr("• "+strings.TrimSpace(p.Prenom+" "+p.Nom)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section("Conditions")
	line("Montant annuel", formatEUR(c.Price))
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(85, 6, tr("Pour le prestataire"), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Pour le client (lu et approuvé)"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatEUR(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	return strings.Replace(s, ".", ",", 1) + " €"
}
