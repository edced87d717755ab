package analytics

import (
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/pnl"
)

// Report is a period review of one account, rendered as Org.
type Report struct {
	Account  string
	Currency string
	From     time.Time
	To       time.Time
	Created  time.Time

	StartBalance float64
	EndBalance   float64
	ReturnPct    float64
	MaxDD        float64
	MaxDDPct     float64

	Summary Summary
	Days    []DayCell
	Notes   []string
}

// NewReport computes the summary, equity and calendar for records.
// opening is the account balance when the period starts.
func NewReport(account journal.Account, opening float64, records []journal.TradeRecord, from, to, now time.Time, loc *time.Location) Report {
	curve := EquityCurve(opening, records)
	r := Report{
		Account:      account.Name,
		Currency:     account.Currency,
		From:         from,
		To:           to,
		Created:      now,
		StartBalance: opening,
		EndBalance:   opening,
		Summary:      Summarize(records),
		Days:         Calendar(records, loc),
	}
	if n := len(curve); n > 0 {
		r.EndBalance = curve[n-1].Balance
	}
	if r.StartBalance > 0 {
		r.ReturnPct = (r.EndBalance - r.StartBalance) / r.StartBalance * 100
	}
	r.MaxDD, r.MaxDDPct = MaxDrawdown(curve)
	if r.Summary.Estimated > 0 {
		r.Notes = append(r.Notes, "Some trades use estimated figures (cross pairs, unknown pairs or non-USD accounts).")
	}
	return r
}

var reportOrgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"money": func(x float64, ccy string) string {
		return pnl.FormatCurrency(x, ccy)
	},
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(reportOrgFuncs).Parse(ReportOrgTemplate))

// WriteOrg renders r to w.
func (r Report) WriteOrg(w io.Writer) error {
	return reportTemplate.Execute(w, r)
}

const ReportOrgTemplate = `* REVIEW: {{.Account}} {{if not .From.IsZero}}{{.From.Format "2006-01-02"}}{{else}}(start){{end}} to {{if not .To.IsZero}}{{.To.Format "2006-01-02"}}{{else}}(now){{end}}
:PROPERTIES:
:ACCOUNT:     {{.Account}}
:CURRENCY:    {{.Currency}}
:START_BAL:   {{printf "%.2f" .StartBalance}}
:END_BAL:     {{printf "%.2f" .EndBalance}}
:NET_PL:      {{printf "%.2f" .Summary.NetProfit}}
:RETURN_PCT:  {{printf "%.2f" .ReturnPct}}
:MAX_DD_PCT:  {{printf "%.2f" .MaxDDPct}}
:TRADES:      {{.Summary.Trades}}
:WINS:        {{.Summary.Wins}}
:LOSSES:      {{.Summary.Losses}}
:WIN_RATE:    {{printf "%.2f" (mul100 .Summary.WinRate)}}
:PROFIT_FAC:  {{if ne .Summary.ProfitFactor 0.0}}{{printf "%.2f" .Summary.ProfitFactor}}{{else}}n/a{{end}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{money .Summary.NetProfit .Currency}}*
- Return:           *{{printf "%.2f" .ReturnPct}}%*
- Max Drawdown:     *{{money .MaxDD .Currency}} ({{printf "%.2f" .MaxDDPct}}%)*
- Win Rate:         *{{printf "%.2f" (mul100 .Summary.WinRate)}}%*
- Profit Factor:    *{{if ne .Summary.ProfitFactor 0.0}}{{printf "%.2f" .Summary.ProfitFactor}}{{else}}n/a{{end}}*
- Average R:R:      *{{printf "%.2f" .Summary.AverageRRR}}*
- Total Pips:       *{{printf "%.1f" .Summary.TotalPips}}*

** Trade Distribution
| Outcome    | Count |
|------------+-------|
| Wins       | {{.Summary.Wins}} |
| Losses     | {{.Summary.Losses}} |
| Break-even | {{.Summary.BreakEven}} |
| Total      | {{.Summary.Trades}} |

{{- if .Days }}

** Daily P/L
| Day        | Trades | Wins | P/L |
|------------+--------+------+-----|
{{- range .Days }}
| {{.Date.Format "2006-01-02"}} | {{.Trades}} | {{.Wins}} | {{printf "%.2f" .Profit}} |
{{- end }}
{{- end }}

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
