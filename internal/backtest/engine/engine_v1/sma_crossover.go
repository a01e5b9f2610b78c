package engine

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"go.uber.org/zap"
)

const (
	warnEmptyDataset      = "Backtest skipped: empty dataset."
	warnInvalidParams     = "Backtest skipped: invalid SMA parameters (require fast < slow and > 0)."
	warnShortDataset      = "Dataset length is below slow_window. No signals/trades generated."
	warnLastBarSignal     = "Last bar signal discarded (no next bar for execution)."
	warnStopLossNext      = "Stop-loss triggered; exit scheduled on next bar open."
	warnStopLossLastBar   = "Stop-loss triggered on last bar; exiting at final close."
	warnTakeProfitNext    = "Take-profit triggered; exit scheduled on next bar open."
	warnTakeProfitLastBar = "Take-profit triggered on last bar; exiting at final close."
	warnForceClosed       = "Open position force-closed at last bar close."
	warnQuantityOverflow  = "Entry skipped: share quantity exceeds the representable range."
)

// pendingAction is an order decided on one bar and filled at the next bar's open.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingBuy
	pendingSell
)

type longPosition struct {
	entryTime  int64
	entryPrice float64
	quantity   int
}

type smaPair struct {
	fast float64
	slow float64
}

// SmaCrossoverEngine is a long-only, single position SMA crossover backtester.
type SmaCrossoverEngine struct {
	log *logger.Logger
}

func NewSmaCrossoverEngine(log *logger.Logger) engine.Engine {
	return &SmaCrossoverEngine{
		log: logger.OrNop(log),
	}
}

// Run backtests series with a silent engine.
func Run(series types.Series, params types.SmaParams, settings types.BacktestSettings) types.BacktestResult {
	return NewSmaCrossoverEngine(nil).Run(series, params, settings)
}

// Run implements engine.Engine.
func (e *SmaCrossoverEngine) Run(series types.Series, params types.SmaParams, settings types.BacktestSettings) types.BacktestResult {
	if len(series) == 0 {
		e.log.Debug("Backtest skipped", zap.String("reason", "empty dataset"))

		return skippedResult(series, settings, warnEmptyDataset)
	}

	if !params.IsValid() {
		e.log.Debug("Backtest skipped",
			zap.String("reason", "invalid parameters"),
			zap.Int("fast_window", params.FastWindow),
			zap.Int("slow_window", params.SlowWindow),
		)

		return skippedResult(series, settings, warnInvalidParams)
	}

	sim := newSimulation(params, settings, len(series))
	if len(series) < params.SlowWindow {
		sim.warn(warnShortDataset)
	}

	for i := range series {
		sim.step(series, i)
	}

	sim.closeOpenPosition(series[len(series)-1])

	drawdown, _ := ComputeDrawdown(sim.equity)
	result := types.BacktestResult{
		Equity:   sim.equity,
		Drawdown: drawdown,
		Trades:   sim.trades,
		Metrics:  ComputeMetrics(sim.equity, sim.trades, settings.StartingCash),
		Warnings: sim.warnings,
	}

	e.log.Debug("Backtest finished",
		zap.Int("bars", len(series)),
		zap.Int("trades", len(result.Trades)),
		zap.Float64("total_return_pct", result.Metrics.TotalReturnPct),
	)

	return result
}

// skippedResult is the flat outcome of a run that could not start.
func skippedResult(series types.Series, settings types.BacktestSettings, warning string) types.BacktestResult {
	equity := make([]float64, len(series))
	for i := range equity {
		equity[i] = settings.StartingCash
	}

	drawdown, _ := ComputeDrawdown(equity)

	return types.BacktestResult{
		Equity:   equity,
		Drawdown: drawdown,
		Trades:   nil,
		Metrics:  ComputeMetrics(equity, nil, settings.StartingCash),
		Warnings: []string{warning},
	}
}

// simulation is the mutable state of a single pass. It never outlives Run.
//
// Products are wrapped in explicit float64 conversions wherever they feed an addition,
// which stops the compiler from fusing them into FMA instructions and keeps results
// bit-identical across architectures.
type simulation struct {
	fastWindow   int
	slowWindow   int
	commission   float64
	positionSize float64
	stopLoss     float64
	takeProfit   float64

	cash     float64
	position optional.Option[longPosition]
	pending  pendingAction
	fastSum  float64
	slowSum  float64
	previous optional.Option[smaPair]

	equity   []float64
	trades   []types.Trade
	warnings []string
}

func newSimulation(params types.SmaParams, settings types.BacktestSettings, bars int) *simulation {
	return &simulation{
		fastWindow:   params.FastWindow,
		slowWindow:   params.SlowWindow,
		commission:   settings.CommissionPct,
		positionSize: clamp01(settings.PositionSizePct),
		stopLoss:     settings.StopLossPct,
		takeProfit:   settings.TakeProfitPct,
		cash:         settings.StartingCash,
		position:     optional.None[longPosition](),
		pending:      pendingNone,
		fastSum:      0,
		slowSum:      0,
		previous:     optional.None[smaPair](),
		equity:       make([]float64, bars),
		trades:       nil,
		warnings:     nil,
	}
}

func (s *simulation) warn(message string) {
	s.warnings = append(s.warnings, message)
}

func (s *simulation) step(series types.Series, i int) {
	bar := series[i]
	isLast := i+1 == len(series)

	s.fillPending(bar)
	s.updateSignals(series, i, isLast)
	s.checkRisk(bar, isLast)

	qty := 0
	if s.position.IsSome() {
		qty = s.position.Unwrap().quantity
	}

	s.equity[i] = s.cash + float64(float64(qty)*bar.Close)
}

// fillPending executes the order queued on the previous bar at this bar's open.
func (s *simulation) fillPending(bar types.Candle) {
	switch s.pending {
	case pendingBuy:
		price := bar.Open
		denominator := price * (1.0 + s.commission)
		budget := s.cash * s.positionSize

		qty := 0
		if denominator > 0 {
			shares := math.Floor(budget / denominator)
			if shares >= math.MaxInt {
				s.warn(warnQuantityOverflow)

				break
			}

			qty = int(shares)
		}

		// A budget that cannot cover one unit skips the entry silently.
		if qty > 0 {
			cost := float64(float64(qty) * price)
			fee := float64(cost * s.commission)
			s.cash -= cost + fee
			s.position = optional.Some(longPosition{
				entryTime:  bar.Time,
				entryPrice: price,
				quantity:   qty,
			})
		}
	case pendingSell:
		if s.position.IsSome() {
			s.exit(bar.Time, bar.Open)
		}
	case pendingNone:
	}

	s.pending = pendingNone
}

// updateSignals advances the rolling sums and turns crossovers into pending orders.
func (s *simulation) updateSignals(series types.Series, i int, isLast bool) {
	closePrice := series[i].Close
	s.fastSum += closePrice
	s.slowSum += closePrice

	if i >= s.fastWindow {
		s.fastSum -= series[i-s.fastWindow].Close
	}

	if i >= s.slowWindow {
		s.slowSum -= series[i-s.slowWindow].Close
	}

	if i+1 < s.fastWindow || i+1 < s.slowWindow {
		return
	}

	current := smaPair{
		fast: s.fastSum / float64(s.fastWindow),
		slow: s.slowSum / float64(s.slowWindow),
	}

	if s.previous.IsSome() {
		prev := s.previous.Unwrap()
		crossUp := prev.fast <= prev.slow && current.fast > current.slow
		crossDown := prev.fast >= prev.slow && current.fast < current.slow

		switch {
		case crossUp && s.position.IsNone() && s.pending == pendingNone:
			s.schedule(pendingBuy, isLast)
		case crossDown && s.position.IsSome() && s.pending == pendingNone:
			s.schedule(pendingSell, isLast)
		}
	}

	s.previous = optional.Some(current)
}

func (s *simulation) schedule(action pendingAction, isLast bool) {
	if isLast {
		s.warn(warnLastBarSignal)

		return
	}

	s.pending = action
}

// checkRisk evaluates stop-loss before take-profit against the bar's close.
// On the last bar no order is queued; closeOpenPosition performs the exit.
func (s *simulation) checkRisk(bar types.Candle, isLast bool) {
	if s.position.IsNone() || s.pending != pendingNone {
		return
	}

	entry := s.position.Unwrap().entryPrice

	barReturn := 0.0
	if entry > 0 {
		barReturn = (bar.Close - entry) / entry
	}

	switch {
	case s.stopLoss > 0 && barReturn <= -s.stopLoss:
		s.triggerRisk(isLast, warnStopLossNext, warnStopLossLastBar)
	case s.takeProfit > 0 && barReturn >= s.takeProfit:
		s.triggerRisk(isLast, warnTakeProfitNext, warnTakeProfitLastBar)
	}
}

func (s *simulation) triggerRisk(isLast bool, scheduled string, lastBar string) {
	if isLast {
		s.warn(lastBar)

		return
	}

	s.pending = pendingSell
	s.warn(scheduled)
}

// closeOpenPosition liquidates a position still open after the final bar at its close.
func (s *simulation) closeOpenPosition(last types.Candle) {
	if s.position.IsNone() {
		return
	}

	s.exit(last.Time, last.Close)
	s.equity[len(s.equity)-1] = s.cash
	s.warn(warnForceClosed)
}

// exit sells the whole position at price and records the round trip.
func (s *simulation) exit(ts int64, price float64) {
	pos := s.position.Unwrap()
	qty := float64(pos.quantity)

	proceeds := float64(qty * price)
	fee := float64(proceeds * s.commission)
	s.cash += proceeds - fee

	s.trades = append(s.trades, types.Trade{
		EntryTime:  pos.entryTime,
		EntryPrice: pos.entryPrice,
		ExitTime:   ts,
		ExitPrice:  price,
		Quantity:   pos.quantity,
		PnL:        tradePnL(pos.entryPrice, price, qty, s.commission),
		ReturnPct:  tradeReturn(pos.entryPrice, price),
	})

	s.position = optional.None[longPosition]()
}

// tradePnL is the net profit of a round trip after commission on both legs.
func tradePnL(entry float64, exit float64, qty float64, commission float64) float64 {
	gross := float64((exit - entry) * qty)
	entryFee := float64(float64(entry*qty) * commission)
	exitFee := float64(float64(exit*qty) * commission)

	return gross - entryFee - exitFee
}

// tradeReturn is the gross price return of a round trip as a fraction.
func tradeReturn(entry float64, exit float64) float64 {
	if entry <= 0 {
		return 0
	}

	return (exit - entry) / entry
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}

	if value > 1 {
		return 1
	}

	return value
}
