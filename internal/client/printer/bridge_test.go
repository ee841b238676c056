package printer

import (
	"context"
	"io"
	"log"
	"testing"

	"pos-terminal/internal/domain"
)

func TestPrintReceiptMissingDriver(t *testing.T) {
	b := New("/nonexistent/php", t.TempDir(), "TP806L", log.New(io.Discard, "", 0))

	res := b.PrintReceipt(context.Background(), domain.Order{ID: "o1"})
	if res.Success {
		t.Fatal("expected failure with a missing driver binary")
	}
	if res.Message == "" {
		t.Fatal("expected a failure message")
	}
}

func TestPrintClosingMissingDriver(t *testing.T) {
	b := New("/nonexistent/php", t.TempDir(), "TP806L", log.New(io.Discard, "", 0))

	res := b.PrintClosing(context.Background(), domain.ClosingRecord{SellerID: "s1"})
	if res.Success {
		t.Fatal("expected failure with a missing driver binary")
	}
}
