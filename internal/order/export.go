package order

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// ExportCSV writes the order as spreadsheet rows: customer identity, one row
// per line item, then the summary rows.
func ExportCSV(o *Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Order", o.ID.String()},
		{"Customer", o.Customer.FirstName + " " + o.Customer.LastName},
		{"Email", o.Customer.Email},
		{"Phone", o.Customer.Phone},
		{},
		{"Name", "Quantity", "Unit", "Unit price", "Line total"},
	}

	for _, item := range o.Items {
		records = append(records, []string{
			item.Title,
			strconv.Itoa(item.Quantity),
			item.BuyUnit.String(),
			formatMoney(item.Price),
			formatMoney(item.LineTotal()),
		})
	}

	records = append(records,
		[]string{},
		[]string{"Subtotal", "", "", "", formatMoney(o.Totals.Subtotal)},
		[]string{"Tax", "", "", "", formatMoney(o.Totals.Tax)},
		[]string{"Shipping", "", "", "", formatMoney(o.Totals.Shipping)},
		[]string{"Total", "", "", "", formatMoney(o.Totals.Total)},
	)

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("export: failed to write csv: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportText renders a line-oriented plain-text receipt.
func ExportText(o *Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order %s\n", o.ID)
	fmt.Fprintf(&b, "%s %s\n", o.Customer.FirstName, o.Customer.LastName)
	fmt.Fprintf(&b, "%s / %s\n", o.Customer.Email, o.Customer.Phone)
	fmt.Fprintf(&b, "Ship to: %s, %s %s, %s (%s)\n",
		o.ShippingAddress.Address, o.ShippingAddress.Zip, o.ShippingAddress.City,
		o.ShippingAddress.Country, o.ShippingMethod)
	b.WriteString(strings.Repeat("-", 48) + "\n")

	for _, item := range o.Items {
		fmt.Fprintf(&b, "%-30s %3d %-4s %10s\n",
			truncate(item.Title, 30), item.Quantity, item.BuyUnit, formatMoney(item.LineTotal()))
	}

	b.WriteString(strings.Repeat("-", 48) + "\n")
	fmt.Fprintf(&b, "%-39s %8s\n", "Subtotal", formatMoney(o.Totals.Subtotal))
	fmt.Fprintf(&b, "%-39s %8s\n", "Tax", formatMoney(o.Totals.Tax))
	fmt.Fprintf(&b, "%-39s %8s\n", "Shipping", formatMoney(o.Totals.Shipping))
	fmt.Fprintf(&b, "%-39s %8s\n", "Total", formatMoney(o.Totals.Total))

	return b.String()
}

var printTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Order {{.ID}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ccc; padding: 6px 10px; text-align: left; }
tfoot td { font-weight: bold; border: none; }
</style>
</head>
<body>
<h1>Order {{.ID}}</h1>
<p>{{.Customer.FirstName}} {{.Customer.LastName}}<br>
{{.Customer.Email}} / {{.Customer.Phone}}<br>
{{.ShippingAddress.Address}}, {{.ShippingAddress.Zip}} {{.ShippingAddress.City}}, {{.ShippingAddress.Country}}</p>
<table>
<thead><tr><th>Name</th><th>Quantity</th><th>Unit</th><th>Unit price</th><th>Line total</th></tr></thead>
<tbody>
{{range .Items}}<tr><td>{{.Title}}</td><td>{{.Quantity}}</td><td>{{.BuyUnit}}</td><td>{{printf "%.2f" .Price}}</td><td>{{printf "%.2f" .LineTotal}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="4">Subtotal</td><td>{{printf "%.2f" .Totals.Subtotal}}</td></tr>
<tr><td colspan="4">Tax</td><td>{{printf "%.2f" .Totals.Tax}}</td></tr>
<tr><td colspan="4">Shipping ({{.ShippingMethod}})</td><td>{{printf "%.2f" .Totals.Shipping}}</td></tr>
<tr><td colspan="4">Total</td><td>{{printf "%.2f" .Totals.Total}}</td></tr>
</tfoot>
</table>
</body>
</html>
`))

// ExportPrintHTML renders a self-contained HTML receipt suitable for the
// host's print facility.
func ExportPrintHTML(o *Order) ([]byte, error) {
	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, o); err != nil {
		return nil, fmt.Errorf("export: failed to render print view: %w", err)
	}
	return buf.Bytes(), nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
