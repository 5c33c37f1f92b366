package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pattty847/Sentinel/internal/sec"
	"github.com/pattty847/Sentinel/internal/util"
)

// Stdout prefixes the desktop client scans for before parsing the payload.
const (
	filingsPrefix      = "FILINGS_DATA:"
	transactionsPrefix = "TRANSACTIONS_DATA:"
)

func main() {
	_ = godotenv.Load() // best-effort

	args := os.Args[1:]
	if len(args) < 2 {
		exitError("missing ticker argument (usage: secfetch filings|transactions TICKER [FORM_TYPE])")
	}
	mode, ticker := args[0], args[1]

	upstream := util.Getenv("SEC_UPSTREAM_URL", "http://localhost:8000")
	log := util.NewStderrLogger(util.Getenv("LOG_LEVEL", "info"))
	client := sec.NewClient(upstream, 15*time.Second, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch mode {
	case "filings":
		form := ""
		if len(args) > 2 {
			form = args[2]
		}
		filings, err := client.FilingsByForm(ctx, ticker, form)
		if err != nil {
			exitError(err.Error())
		}
		if filings == nil {
			filings = []sec.Filing{}
		}
		emit(filingsPrefix, filings)
	case "transactions":
		transactions, err := client.InsiderTransactions(ctx, ticker)
		if err != nil {
			exitError(err.Error())
		}
		if transactions == nil {
			transactions = []sec.Transaction{}
		}
		emit(transactionsPrefix, transactions)
	default:
		exitError(fmt.Sprintf("unknown mode %q (want filings or transactions)", mode))
	}
}

// emit prints the prefixed payload line the desktop client parses.
func emit(prefix string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		exitError(err.Error())
	}
	fmt.Println(prefix + string(data))
}

// exitError reports failures as a JSON object on stdout, matching the legacy
// fetch scripts, then exits non-zero.
func exitError(msg string) {
	data, _ := json.Marshal(map[string]string{"error": msg})
	fmt.Println(string(data))
	os.Exit(1)
}
