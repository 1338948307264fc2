package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single statement row queued for bulk classification.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// ClassifiedTransaction pairs a statement row with its classification outcome.
type ClassifiedTransaction struct {
	Transaction Transaction
	Result      ClassificationResult
}
