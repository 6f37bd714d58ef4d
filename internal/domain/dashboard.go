package domain

// DashboardSummary is a precomputed per-year rollup written by an external
// aggregation process. The dashboard reads it as-is; nothing here is derived
// at read time.
type DashboardSummary struct {
	TotalIncome     int64  `firestore:"totalIncome" json:"totalIncome"`
	TotalDeductions int64  `firestore:"totalDeductions" json:"totalDeductions"`
	TaxableIncome   int64  `firestore:"taxableIncome" json:"taxableIncome"`
	EstimatedTax    int64  `firestore:"estimatedTax" json:"estimatedTax"`
	GSTPayable      int64  `firestore:"gstPayable" json:"gstPayable"`
	RefundEstimate  int64  `firestore:"refundEstimate" json:"refundEstimate"`
	FilingStatus    string `firestore:"filingStatus" json:"filingStatus"`
	FinancialYear   string `firestore:"financialYear" json:"financialYear"`
}

type SourceAmount struct {
	SourceType string `firestore:"sourceType" json:"sourceType"`
	Amount     int64  `firestore:"amount" json:"amount"`
}

type SectionAmount struct {
	Section string `firestore:"section" json:"section"`
	Amount  int64  `firestore:"amount" json:"amount"`
}

type MonthAmount struct {
	Month  int   `firestore:"month" json:"month"`
	Amount int64 `firestore:"amount" json:"amount"`
}

// ChartData is a precomputed per-year chart dataset document.
type ChartData struct {
	FinancialYear       string          `firestore:"financialYear" json:"financialYear"`
	IncomeBySource      []SourceAmount  `firestore:"incomeBySource" json:"incomeBySource"`
	DeductionsBySection []SectionAmount `firestore:"deductionsBySection" json:"deductionsBySection"`
	MonthlyIncome       []MonthAmount   `firestore:"monthlyIncome" json:"monthlyIncome"`
}
