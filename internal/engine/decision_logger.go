package engine

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"scout/internal/signal"
)

// Decision is one accepted trade candidate. It is constructed once,
// appended to the log, and never revised.
type Decision struct {
	Timestamp time.Time // record-creation instant, UTC
	Date      string    // local trading-calendar date
	Symbol    string
	Signals   signal.Report
	Entry     float64
	Stop      float64
	StopDist  float64
	Shares    int
	RiskUSD   float64
}

var csvHeader = []string{"timestamp", "date", "ticker", "signals", "entry", "stop", "stop_dist", "shares", "risk_usd"}

func (d Decision) row() []string {
	return []string{
		d.Timestamp.UTC().Format(time.RFC3339),
		d.Date,
		d.Symbol,
		d.Signals.String(),
		money(d.Entry, 4),
		money(d.Stop, 4),
		money(d.StopDist, 4),
		strconv.Itoa(d.Shares),
		money(d.RiskUSD, 2),
	}
}

func money(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

// DecisionLogger appends decisions to a CSV file. The header is written
// only when the file is new or empty, so repeated invocations against
// the same path keep appending rows under a single header. Appends are
// serialized; a failed write is a hard error for the cycle.
type DecisionLogger struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

func NewDecisionLogger(path string) (*DecisionLogger, error) {
	info, err := os.Stat(path)
	fresh := errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	logger := &DecisionLogger{file: file, writer: csv.NewWriter(file)}
	if fresh {
		if err := logger.writeRow(csvHeader); err != nil {
			_ = file.Close()
			return nil, err
		}
	}
	return logger, nil
}

func (d *DecisionLogger) Append(decision Decision) error {
	return d.writeRow(decision.row())
}

func (d *DecisionLogger) writeRow(row []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.writer.Write(row); err != nil {
		return err
	}
	d.writer.Flush()
	return d.writer.Error()
}

func (d *DecisionLogger) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writer.Flush()
	if err := d.writer.Error(); err != nil {
		_ = d.file.Close()
		return err
	}
	return d.file.Close()
}
