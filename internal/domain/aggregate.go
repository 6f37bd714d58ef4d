package domain

// Read-side aggregation over query results. Nothing here is cached or
// persisted; totals are recomputed on every call.

func TotalIncome(records []Income) int64 {
	var total int64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

func TotalIncomeBySource(records []Income, source IncomeSource) int64 {
	var total int64
	for _, r := range records {
		if r.SourceType == source {
			total += r.Amount
		}
	}
	return total
}

// IncomeBySource groups income totals per source, for report views.
func IncomeBySource(records []Income) map[IncomeSource]int64 {
	totals := make(map[IncomeSource]int64)
	for _, r := range records {
		totals[r.SourceType] += r.Amount
	}
	return totals
}

func TotalDeductions(records []Deduction) int64 {
	var total int64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

func TotalDeductionsBySection(records []Deduction, section DeductionSection) int64 {
	var total int64
	for _, r := range records {
		if r.SectionType == section {
			total += r.Amount
		}
	}
	return total
}

func DeductionsBySection(records []Deduction) map[DeductionSection]int64 {
	totals := make(map[DeductionSection]int64)
	for _, r := range records {
		totals[r.SectionType] += r.Amount
	}
	return totals
}

func TotalGSTPayable(records []GSTReturn) int64 {
	var total int64
	for _, r := range records {
		total += r.GSTPayable
	}
	return total
}
