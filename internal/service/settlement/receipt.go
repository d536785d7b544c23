package settlement

import (
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// BuildReceipt copies the printable fields of a settlement.
func BuildReceipt(s settlement.Settlement, studioName string, issuedAt time.Time) settlement.Receipt {
	return settlement.Receipt{
		StudioName:       studioName,
		IssuedAt:         issuedAt.Format("2006-01-02 15:04"),
		RoomID:           s.RoomID,
		RoomName:         s.RoomName,
		Mode:             s.Mode,
		ModelCedula:      s.Billing.ModelCedula,
		BankAccount:      s.Billing.BankAccount,
		PaymentMethod:    s.Billing.PaymentMethod,
		Period:           s.Period,
		ExchangeRate:     s.ExchangeRate,
		ModelPercentage:  s.Billing.ModelPercentage,
		TokenValueUsd:    s.Billing.TokenValueUsd,
		Platforms:        s.Platforms,
		TotalTokens:      s.Aggregate.TotalTokens,
		Gross:            s.Gross,
		BaseSalary:       s.BaseSalary,
		Deductions:       s.Deductions,
		AbsencesCount:    s.Billing.AbsencesCount,
		PaymentsCredited: s.PaymentsCredited,
		NetPayout:        s.NetPayout,
	}
}

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"cop":     formatCop,
	"usd":     formatUsd,
	"isStaff": func(m settlement.Mode) bool { return m == settlement.ModeStaff },
	"upper":   strings.ToUpper,
}).Parse(receiptHTML))

// RenderReceipt writes the print-formatted receipt.
func RenderReceipt(w io.Writer, r settlement.Receipt) error {
	return receiptTemplate.Execute(w, r)
}

// formatCop renders whole pesos with dot thousand separators, e.g. $180.000.
func formatCop(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)
	var b strings.Builder
	if d.Round(0).IsNegative() {
		b.WriteString("-")
	}
	b.WriteString("$")
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatUsd(d decimal.Decimal) string {
	return "US$" + d.StringFixed(2)
}

const receiptHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Liquidación {{.RoomName}} {{.Period.Start}} - {{.Period.End}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #111; margin: 24px; }
h1 { font-size: 18px; margin: 0; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; }
th, td { padding: 4px 6px; border-bottom: 1px solid #ddd; text-align: left; }
td.num, th.num { text-align: right; }
.total { font-weight: bold; border-top: 2px solid #111; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<header>
  <h1>{{upper .StudioName}}</h1>
  <p>Comprobante de liquidación · emitido {{.IssuedAt}}</p>
</header>
<section>
  <p><strong>Room:</strong> #{{.RoomID}} {{.RoomName}}</p>
  {{if .ModelCedula}}<p><strong>Cédula:</strong> {{.ModelCedula}}</p>{{end}}
  {{if .BankAccount}}<p><strong>Cuenta / Pago:</strong> {{.BankAccount}}{{if .PaymentMethod}} ({{.PaymentMethod}}){{end}}</p>{{end}}
  <p><strong>Periodo:</strong> {{.Period.Start}} al {{.Period.End}}</p>
</section>
{{if isStaff .Mode}}
<section>
  <table>
    <tr><th>Sueldo base</th><td class="num">{{cop .BaseSalary}}</td></tr>
  </table>
</section>
{{else}}
<section>
  <table>
    <thead><tr><th>Canal</th><th class="num">Tokens</th><th class="num">Valor unit</th><th class="num">Total USD</th></tr></thead>
    <tbody>
    {{range .Platforms}}<tr><td>{{upper .Platform}}</td><td class="num">{{.Tokens}}</td><td class="num">{{usd $.TokenValueUsd}}</td><td class="num">{{usd .ValueUsd}}</td></tr>
    {{end}}</tbody>
    <tfoot><tr class="total"><td>Total producción</td><td class="num">{{.TotalTokens}}</td><td></td><td></td></tr></tfoot>
  </table>
  <p>Comisión {{.ModelPercentage}}% · TRM {{cop .ExchangeRate}} · Subtotal {{cop .Gross}}</p>
</section>
{{end}}
<section>
  <table>
    <thead><tr><th>Deducciones</th><th class="num">Valor</th></tr></thead>
    <tbody>
      <tr><td>Sex shop (compras)</td><td class="num">-{{cop .Deductions.SexShop}}</td></tr>
      <tr><td>Dulcería</td><td class="num">-{{cop .Deductions.Snacks}}</td></tr>
      <tr><td>Adelantos</td><td class="num">-{{cop .Deductions.Advances}}</td></tr>
      {{if not (isStaff .Mode)}}<tr><td>Inasistencias ({{.AbsencesCount}})</td><td class="num">-{{cop .Deductions.AbsencePenalty}}</td></tr>
      <tr><td>Abonos sex shop</td><td class="num">+{{cop .PaymentsCredited}}</td></tr>{{end}}
    </tbody>
    <tfoot>
      <tr><td>Total deducciones</td><td class="num">-{{cop .Deductions.Total}}</td></tr>
      <tr class="total"><td>Neto a pagar</td><td class="num">{{cop .NetPayout}}</td></tr>
    </tfoot>
  </table>
</section>
</body>
</html>
`
