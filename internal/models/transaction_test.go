package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_ReferenceNumberFormat(t *testing.T) {
	ref := generateReferenceNumber()
	today := time.Now().Format("20060102")

	assert.Regexp(t, regexp.MustCompile(`^TXN\d{8}[A-Z0-9]{8}$`), ref)
	assert.Equal(t, "TXN"+today, ref[:11])
}

func TestTransaction_ReferenceNumberUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := generateReferenceNumber()
		assert.False(t, seen[ref], "duplicate reference number %s", ref)
		seen[ref] = true
	}
}

func TestTransaction_BeforeCreate(t *testing.T) {
	txn := &Transaction{Amount: decimal.RequireFromString("10.00"), Type: TransactionTypeDeposit}
	require.NoError(t, txn.BeforeCreate(nil))
	assert.NotEmpty(t, txn.ReferenceNumber)

	// an assigned reference is never regenerated
	assigned := &Transaction{ReferenceNumber: "TXN20250101AAAAAAAA"}
	require.NoError(t, assigned.BeforeCreate(nil))
	assert.Equal(t, "TXN20250101AAAAAAAA", assigned.ReferenceNumber)
}

func TestTransaction_Complete(t *testing.T) {
	txn := &Transaction{Status: TransactionStatusPending}
	before := time.Now()
	txn.Complete()

	assert.Equal(t, TransactionStatusCompleted, txn.Status)
	require.NotNil(t, txn.CompletedAt)
	assert.False(t, txn.CompletedAt.Before(before))
}

func TestTransaction_Fail(t *testing.T) {
	txn := &Transaction{Status: TransactionStatusPending, Description: "Transfer"}
	txn.Fail("insufficient balance")

	assert.Equal(t, TransactionStatusFailed, txn.Status)
	assert.Equal(t, "Transfer | Failed: insufficient balance", txn.Description)

	empty := &Transaction{Status: TransactionStatusPending}
	empty.Fail("wallet inactive")
	assert.Equal(t, "Failed: wallet inactive", empty.Description)
}
