package domain

// PrintResult reports the outcome of one printer-bridge invocation.
// PrinterError marks a printer-level problem (offline, out of paper) as
// opposed to a failure running the driver itself; callers treat both as
// warnings, never as business failures.
type PrintResult struct {
	Success      bool   `json:"success"`
	PrinterError bool   `json:"printerError,omitempty"`
	Message      string `json:"message"`
}
