// Package sec bridges the upstream SEC data service to local consumers over
// HTTP and the command line.
package sec

import "context"

// Filing is one SEC filing reference.
type Filing struct {
	FilingDate  string `json:"filingDate"`
	Form        string `json:"form"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Transaction is one insider transaction extracted from Form 4 data.
type Transaction struct {
	TransactionDate string  `json:"transactionDate"`
	InsiderName     string  `json:"insiderName"`
	TransactionType string  `json:"transactionType"`
	Shares          float64 `json:"shares"`
	Price           float64 `json:"price"`
}

// Metric is one named financial summary value.
type Metric struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// Summary maps metric names to their reported values.
type Summary map[string]Metric

// Fetcher is the narrow surface the bridge handlers and fetch CLI consume.
type Fetcher interface {
	FilingsByForm(ctx context.Context, ticker, formType string) ([]Filing, error)
	InsiderTransactions(ctx context.Context, ticker string) ([]Transaction, error)
	FinancialSummary(ctx context.Context, ticker string) (Summary, error)
}
