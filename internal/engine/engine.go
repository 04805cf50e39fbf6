package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"scout/internal/config"
	"scout/internal/md"
	"scout/internal/regime"
	"scout/internal/risk"
	"scout/internal/signal"
	"scout/internal/state"
)

// Engine runs the decision pipeline over the configured universe.
type Engine struct {
	cfg       config.Config
	supplier  md.Supplier
	gate      risk.Gate
	sizer     risk.Sizer
	flow      signal.Flow
	breakout  signal.Breakout
	decisions *DecisionLogger
	store     *state.Store
	loc       *time.Location
}

func New(cfg config.Config, supplier md.Supplier, gate risk.Gate, sizer risk.Sizer, decisions *DecisionLogger, store *state.Store, loc *time.Location) *Engine {
	return &Engine{
		cfg:       cfg,
		supplier:  supplier,
		gate:      gate,
		sizer:     sizer,
		flow:      signal.Flow{VolMult: cfg.VolMult},
		breakout:  signal.Breakout{},
		decisions: decisions,
		store:     store,
		loc:       loc,
	}
}

// Summary totals one scan cycle.
type Summary struct {
	Evaluated int
	Accepted  int
	Skipped   int
}

type result struct {
	symbol   string
	decision *Decision
	err      error
}

// Scan evaluates the full universe once. Instruments are independent
// and evaluated concurrently, but decisions reach the log strictly in
// universe order. Per-instrument failures are logged and skipped; a
// decision-log write failure or a canceled context ends the cycle with
// an error.
func (e *Engine) Scan(ctx context.Context) (Summary, error) {
	results := make([]result, len(e.cfg.Universe))
	sem := make(chan struct{}, e.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, symbol := range e.cfg.Universe {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = result{symbol: symbol, err: fmt.Errorf("panic: %v", r)}
				}
			}()
			sem <- struct{}{}
			defer func() { <-sem }()

			decision, err := e.Evaluate(ctx, symbol)
			results[i] = result{symbol: symbol, decision: decision, err: err}
		}(i, symbol)
	}
	wg.Wait()

	summary := Summary{Evaluated: len(results)}
	for _, res := range results {
		if res.err != nil {
			summary.Skipped++
			log.Warn().Str("symbol", res.symbol).Err(res.err).Msg("instrument skipped")
			continue
		}
		if res.decision == nil {
			continue
		}
		if err := e.decisions.Append(*res.decision); err != nil {
			return summary, fmt.Errorf("append decision for %s: %w", res.symbol, err)
		}
		summary.Accepted++
		e.store.RecordDecision(res.symbol, res.decision.Timestamp)
		log.Info().
			Str("symbol", res.symbol).
			Str("signals", res.decision.Signals.String()).
			Float64("entry", res.decision.Entry).
			Float64("stop", res.decision.Stop).
			Int("shares", res.decision.Shares).
			Msg("trade candidate")
	}

	// A canceled or expired context aborts the cycle; the checkpoint
	// only records completed scans.
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	e.store.RecordScan(time.Now().UTC())
	return summary, nil
}

// Evaluate runs one instrument through the pipeline: regime check,
// signal evaluation, consensus gate, sizing. A nil decision with a nil
// error is the normal no-candidate outcome; an error marks a supplier
// or data failure for this instrument only.
func (e *Engine) Evaluate(ctx context.Context, symbol string) (*Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fine, err := e.supplier.Bars(ctx, symbol, md.Intraday, e.cfg.IntradayLookback)
	if err != nil {
		return nil, fmt.Errorf("intraday bars: %w", err)
	}
	fine = fine.Clean()
	if fine.Len() == 0 {
		log.Debug().Str("symbol", symbol).Msg("no intraday bars")
		return nil, nil
	}

	if !regime.Tradeable(fine) {
		log.Debug().Str("symbol", symbol).Msg("regime not tradeable")
		return nil, nil
	}

	// Detectors are independent; both always run.
	flowOn := e.flow.Detect(fine)

	daily, err := e.supplier.Bars(ctx, symbol, md.Daily, e.cfg.DailyLookback)
	if err != nil {
		// Missing confirmation data is not evidence of a breakout.
		log.Warn().Str("symbol", symbol).Err(err).Msg("daily bars unavailable")
		daily = nil
	}
	boyhOn := e.breakout.Detect(fine, daily.Clean())

	report := signal.Report{
		{Name: signal.FlowName, On: flowOn},
		{Name: signal.BreakoutName, On: boyhOn},
	}

	if err := e.gate.Evaluate(report); err != nil {
		log.Debug().Str("symbol", symbol).Str("signals", report.String()).Msg(err.Error())
		return nil, nil
	}

	stopDist, ok := e.sizer.StopDistance(fine)
	if !ok {
		log.Debug().Str("symbol", symbol).Msg("stop distance unavailable")
		return nil, nil
	}
	shares, ok := e.sizer.Shares(stopDist)
	if !ok {
		log.Debug().Str("symbol", symbol).Float64("stop_dist", stopDist).Msg("sizing suppressed candidate")
		return nil, nil
	}

	last, _ := fine.Last()
	now := time.Now().UTC()
	return &Decision{
		Timestamp: now,
		Date:      now.In(e.loc).Format("2006-01-02"),
		Symbol:    symbol,
		Signals:   report,
		Entry:     last.Close,
		Stop:      last.Close - stopDist,
		StopDist:  stopDist,
		Shares:    shares,
		RiskUSD:   e.sizer.Budget(),
	}, nil
}
