package engine

// Export is the one-way, read-only record callers download. Its field names
// and 2-decimal money / 1-decimal percentage precision are fixed for
// compatibility with previously exported files.
type Export struct {
	BillSummary ExportSummary  `json:"billSummary"`
	People      []ExportPerson `json:"people"`
}

// ExportSummary mirrors the bill-level totals.
type ExportSummary struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Tip        float64 `json:"tip"`
	ServiceFee float64 `json:"serviceFee"`
	GrandTotal float64 `json:"grandTotal"`
}

// ExportPerson is one participant's share in the export.
type ExportPerson struct {
	Name  string       `json:"name"`
	Total float64      `json:"total"`
	Items []ExportItem `json:"items"`
}

// ExportItem is one item line in the export.
type ExportItem struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// Export builds the export record directly from DetailedBreakdown and
// Summary, so exported figures always match what those queries report.
func (e *Engine) Export() Export {
	summary := e.Summary()
	breakdown := e.DetailedBreakdown()

	out := Export{
		BillSummary: ExportSummary{
			Subtotal:   roundToCents(summary.Subtotal),
			Tax:        roundToCents(summary.Tax),
			Tip:        roundToCents(summary.Tip),
			ServiceFee: roundToCents(summary.ServiceFee),
			GrandTotal: roundToCents(summary.GrandTotal),
		},
		People: make([]ExportPerson, 0, len(breakdown)),
	}

	for _, pb := range breakdown {
		person := ExportPerson{
			Name:  pb.Name,
			Total: pb.GrandTotal,
			Items: make([]ExportItem, 0, len(pb.Items)),
		}
		for _, line := range pb.Items {
			person.Items = append(person.Items, ExportItem{
				Name:       line.Name,
				Percentage: line.Percentage,
				Amount:     line.Amount,
			})
		}
		out.People = append(out.People, person)
	}

	return out
}
