// Package printer bridges to the local receipt-printer driver. The
// driver is a PHP script speaking ESC/POS to the ticket printer; this
// side only marshals the record to a temp file, invokes the script and
// interprets its verdict.
package printer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"pos-terminal/internal/domain"
)

const (
	receiptScript = "ticket_printer.php"
	closingScript = "closing_printer.php"
)

type Bridge struct {
	phpBin      string
	scriptDir   string
	printerName string
	logger      *log.Logger
}

func New(phpBin, scriptDir, printerName string, logger *log.Logger) *Bridge {
	return &Bridge{
		phpBin:      phpBin,
		scriptDir:   scriptDir,
		printerName: printerName,
		logger:      logger,
	}
}

// PrintReceipt renders a sale ticket for a persisted order.
func (b *Bridge) PrintReceipt(ctx context.Context, order domain.Order) domain.PrintResult {
	return b.run(ctx, receiptScript, "order", order)
}

// PrintClosing renders the register cut-off ticket. The closing record
// is forwarded exactly as the closing service assembled it.
func (b *Bridge) PrintClosing(ctx context.Context, rec domain.ClosingRecord) domain.PrintResult {
	return b.run(ctx, closingScript, "closing", rec)
}

func (b *Bridge) run(ctx context.Context, script, kind string, record interface{}) domain.PrintResult {
	payload, err := json.Marshal(record)
	if err != nil {
		return failure(fmt.Sprintf("marshal %s: %v", kind, err))
	}

	tmp, err := os.CreateTemp("", kind+"-data-*.json")
	if err != nil {
		return failure(fmt.Sprintf("temp file: %v", err))
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return failure(fmt.Sprintf("write %s data: %v", kind, err))
	}
	if err := tmp.Close(); err != nil {
		return failure(fmt.Sprintf("close %s data: %v", kind, err))
	}

	runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(runCtx, b.phpBin, filepath.Join(b.scriptDir, script), tmpPath)
	cmd.Env = append(os.Environ(), "PRINTER_NAME="+b.printerName)
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderrOf(err))
		if msg == "" {
			msg = err.Error()
		}
		b.logger.Printf("%s driver failed: %s", kind, msg)
		return failure(msg)
	}

	// The driver reports its verdict as JSON on stdout. A script that
	// exits cleanly without one printed something, so treat that as
	// success.
	var res domain.PrintResult
	if jsonErr := json.Unmarshal(out, &res); jsonErr != nil {
		return domain.PrintResult{Success: true, Message: "printed"}
	}
	return res
}

func stderrOf(err error) string {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return string(exitErr.Stderr)
	}
	return ""
}

func failure(msg string) domain.PrintResult {
	return domain.PrintResult{Success: false, Message: msg}
}
