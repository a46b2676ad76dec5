package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

// ======================================================
// BILL DATA
// ======================================================

type BillRow struct {
	Date   string
	Type   string
	Reason string
	Count  int
	Price  string
}

type BillData struct {
	Month        string
	Year         int
	UserFullName string
	Rows         []BillRow
	TotalCount   int
	TotalAmount  string
	UnitPrice    string
	GeneratedAt  string
}

const dateLayout = "02-01-2006"

// BuildBillData reshapes a month's entries into the rows the bill shows:
// DD-MM-YYYY dates, "-" for absent reasons, rupee prices at two decimals.
func BuildBillData(
	fullName string,
	month string,
	year int,
	entries []models.Tiffin,
	unitPrice float64,
	now time.Time,
) BillData {

	rows := make([]BillRow, 0, len(entries))
	totalCount := 0
	totalAmount := 0.0

	for _, t := range entries {
		reason := "-"
		if t.CancelReason != nil && *t.CancelReason != "" {
			reason = *t.CancelReason
		}

		rows = append(rows, BillRow{
			Date:   t.CreatedAt.UTC().Format(dateLayout),
			Type:   t.Type,
			Reason: reason,
			Count:  t.Count,
			Price:  rupees(t.Price),
		})

		totalCount += t.Count
		totalAmount += t.Price
	}

	return BillData{
		Month:        month,
		Year:         year,
		UserFullName: fullName,
		Rows:         rows,
		TotalCount:   totalCount,
		TotalAmount:  rupees(totalAmount),
		UnitPrice:    rupees(unitPrice),
		GeneratedAt:  now.Format("02-01-2006 15:04:05"),
	}
}

func rupees(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}

// ======================================================
// HTML TEMPLATE
// ======================================================

var billTemplate = template.Must(template.New("bill").Parse(`<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h2 { text-align: center; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: center; }
        th { background-color: #f2f2f2; }
        .total-row { font-weight: bold; background-color: #f9f9f9; }
        .footer { display: flex; justify-content: space-between;
            margin-top: 20px; font-size: 12px; text-align: center; color: #666;
        }
    </style>
</head>
<body>
    <h2>Tiffin Bill For Month of {{.Month}}, {{.Year}} - {{.UserFullName}}</h2>
    <table>
        <tr>
            <th>Date</th>
            <th>Type</th>
            <th>Reason For Cancel / &lt; 2 Tiffins</th>
            <th>Count</th>
            <th>Price (₹)</th>
        </tr>
        {{range .Rows}}
        <tr>
            <td>{{.Date}}</td>
            <td>{{.Type}}</td>
            <td>{{.Reason}}</td>
            <td>{{.Count}}</td>
            <td>{{.Price}}</td>
        </tr>
        {{end}}
        <tr class="total-row">
            <td colspan="3">Total</td>
            <td>{{.TotalCount}}</td>
            <td>{{.TotalAmount}}</td>
        </tr>
    </table>
    <div class="footer">
        <span style="color: green;">* Price for 1 Tiffin (of all type) is: {{.UnitPrice}}</span>
        Generated on {{.GeneratedAt}}
    </div>
</body>
</html>`))

func RenderHTML(data BillData) (string, error) {
	var buf bytes.Buffer
	if err := billTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
