package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/dtroode/fuelsupply-server/internal/model"
)

var _ model.Renderer = (*Renderer)(nil)

// epoch pins the PDF timestamps when the input carries no date.
var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// Renderer draws invoices and contracts with fpdf. Output bytes depend only on the input.
type Renderer struct {
	company string
}

// NewRenderer creates a renderer that prints company in document headers.
func NewRenderer(company string) *Renderer {
	return &Renderer{company: company}
}

type page struct {
	*fpdf.Fpdf
	tr func(string) string
}

func (r *Renderer) newPage(title string, at time.Time) *page {
	if at.IsZero() {
		at = epoch
	}
	at = at.UTC()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(at)
	doc.SetModificationDate(at)
	doc.SetCatalogSort(true)
	doc.SetCompression(true)
	doc.SetTitle(title, true)
	doc.SetAuthor(r.company, true)
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	p := &page{Fpdf: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
	p.SetFont("Helvetica", "B", 16)
	p.CellFormat(0, 10, p.tr(r.company), "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 12)
	p.CellFormat(0, 8, p.tr(title), "", 1, "L", false, 0, "")
	p.Ln(4)
	return p
}

func (p *page) field(label, value string) {
	p.SetFont("Helvetica", "B", 10)
	p.CellFormat(55, 6, p.tr(label), "", 0, "L", false, 0, "")
	p.SetFont("Helvetica", "", 10)
	p.CellFormat(0, 6, p.tr(value), "", 1, "L", false, 0, "")
}

func (p *page) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderInvoice draws an invoice with one row per line item and the grand total.
func (r *Renderer) RenderInvoice(payload model.InvoicePayload) ([]byte, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	p := r.newPage("Invoice "+payload.Number, payload.IssuedAt)
	p.field("Invoice number", payload.Number)
	if !payload.IssuedAt.IsZero() {
		p.field("Issued", payload.IssuedAt.UTC().Format("2006-01-02"))
	}
	p.field("Customer", payload.CustomerName)
	p.field("Email", payload.CustomerEmail)
	p.Ln(6)

	widths := []float64{80, 25, 30, 35}
	p.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Description", "Qty", "Unit price", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		p.CellFormat(widths[i], 7, h, "B", 0, align, false, 0, "")
	}
	p.Ln(-1)

	p.SetFont("Helvetica", "", 10)
	for _, item := range payload.Items {
		p.CellFormat(widths[0], 7, p.tr(item.Description), "", 0, "L", false, 0, "")
		p.CellFormat(widths[1], 7, item.Quantity.String(), "", 0, "R", false, 0, "")
		p.CellFormat(widths[2], 7, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		p.CellFormat(widths[3], 7, item.Amount().StringFixed(2), "", 1, "R", false, 0, "")
	}

	p.SetFont("Helvetica", "B", 11)
	p.CellFormat(widths[0]+widths[1]+widths[2], 9, "Total", "T", 0, "R", false, 0, "")
	p.CellFormat(widths[3], 9, model.FormatMoney(payload.Total(), payload.Currency), "T", 1, "R", false, 0, "")

	if payload.Notes != "" {
		p.Ln(6)
		p.SetFont("Helvetica", "", 9)
		p.MultiCell(0, 5, p.tr(payload.Notes), "", "L", false)
	}

	return p.bytes()
}

func optional(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	s := strconv.FormatFloat(*v, 'f', 2, 64)
	if unit != "" {
		s += " " + unit
	}
	return s
}

// RenderContract draws a contract summary. The signature block is added when acceptance is set.
func (r *Renderer) RenderContract(c model.Contract, acceptance *model.Acceptance) ([]byte, error) {
	at := c.CreatedAt
	if acceptance != nil && !acceptance.CreatedAt.IsZero() {
		at = acceptance.CreatedAt
	}
	if c.ApprovedAt != nil {
		at = *c.ApprovedAt
	}

	title := "Fuel purchase contract"
	if c.Type == model.ContractTypeRent {
		title = "Fuel tank rental contract"
	}

	p := r.newPage(title, at)
	p.field("Contract", c.ID.String())
	p.field("Status", string(c.Status))
	p.field("Customer", c.CustomerName)
	p.field("Email", c.Email)
	p.field("Terms version", c.TermsVersion)
	p.Ln(4)
	p.field("Tank size", optional(c.TankSizeLitres, "L"))
	p.field("Monthly consumption", optional(c.MonthlyConsumptionLitres, "L"))
	p.field("Market price per unit", optional(c.MarketPricePerUnit, ""))
	p.field("Platform price per unit", optional(c.PlatformPricePerUnit, ""))
	p.field("Estimated savings", optional(c.EstimatedSavings, ""))
	p.field("Estimated payback", optional(c.EstimatedPaybackMonths, "months"))

	if acceptance != nil {
		p.Ln(8)
		p.SetFont("Helvetica", "B", 11)
		p.CellFormat(0, 7, "Signature", "B", 1, "L", false, 0, "")
		p.field("Signed by", acceptance.AcceptedName)
		p.field("Signer email", acceptance.AcceptedEmail)
		p.field("Signed at", acceptance.CreatedAt.UTC().Format(time.RFC3339))
		p.field("Acceptance", acceptance.ID.String())
	}
	if c.ApprovedAt != nil {
		p.Ln(4)
		p.field("Activated", c.ApprovedAt.UTC().Format(time.RFC3339))
	}

	return p.bytes()
}
