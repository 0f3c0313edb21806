package pdf

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
)

const dateLayout = "02-01-2006"

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) RenderInvoice(ctx context.Context, snapshot invoicedomain.Snapshot) (io.Reader, error) {
	invoice := snapshot.Invoice

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Tax Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	// Invoice meta
	m.AddRow(16,
		col.New(6).Add(
			text.New("Invoice number: "+invoice.InvoiceNo, props.Text{Top: 0}),
			text.New("Invoice date: "+invoice.InvoiceDate.Format(dateLayout), props.Text{Top: 4}),
			text.New("Invoice type: "+strings.ToUpper(string(invoice.Type)), props.Text{Top: 8}),
		),
		col.New(6),
	)

	// Addresses
	m.AddRow(36,
		col.New(6).Add(
			text.New(snapshot.SellerName, props.Text{Style: fontstyle.Bold}),
			text.New(snapshot.SellerAddress, props.Text{Top: 5}),
			text.New("GSTIN: "+snapshot.SellerGSTIN, props.Text{Top: 16}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(snapshot.PartyName, props.Text{Top: 5}),
			text.New(snapshot.PartyAddress, props.Text{Top: 9}),
			text.New("GSTIN: "+snapshot.PartyGSTIN, props.Text{Top: 20}),
		),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(4, "Material", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Manifest", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, material := range invoice.Materials {
		m.AddRow(8,
			text.NewCol(4, material.Name, props.Text{Size: 9}),
			text.NewCol(2, material.ManifestNo, props.Text{Size: 9}),
			text.NewCol(2, material.Quantity.String()+" "+material.Unit, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, material.Rate.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, material.Amount.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	if invoice.OtherChargeDesc != "" || invoice.OtherChargeAmount.IsPositive() {
		description := invoice.OtherChargeDesc
		if description == "" {
			description = "Other charges"
		}
		m.AddRow(8,
			text.NewCol(10, description, props.Text{Size: 9}),
			text.NewCol(2, invoice.OtherChargeAmount.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals
	totals := []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal", invoice.Subtotal.StringFixed(2), false},
		{"CGST @ " + invoice.CGSTRate.String() + "%", invoice.CGSTAmount.StringFixed(2), false},
		{"SGST @ " + invoice.SGSTRate.String() + "%", invoice.SGSTAmount.StringFixed(2), false},
		{"Grand total", invoice.GrandTotal.StringFixed(2), true},
		{"Payment received", invoice.PaymentReceived.StringFixed(2), false},
		{"Balance due", invoice.GrandTotal.Sub(invoice.PaymentReceived).StringFixed(2), true},
	}
	for _, row := range totals {
		style := fontstyle.Normal
		if row.bold {
			style = fontstyle.Bold
		}
		m.AddRow(7,
			col.New(7),
			text.NewCol(3, row.label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, row.value, props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
