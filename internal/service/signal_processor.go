package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"tradebridge/internal/gateway"
	"tradebridge/internal/metrics"
	"tradebridge/internal/models"
	"tradebridge/internal/repository"
)

// Result is the caller-visible outcome. Exactly one of Status or Error is
// set; the wire shape is independent of the persisted status/error_detail
// pair.
type Result struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SignalProcessor runs the validate, execute, record pipeline. Every
// processed signal produces exactly one ledger append: the gateway call
// strictly precedes the append, and the append strictly precedes returning.
type SignalProcessor struct {
	Gateway gateway.OrderGateway
	Ledger  repository.Ledger
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Process handles one signal end to end. No failure escapes: validation and
// execution errors become error records plus error results, never panics.
func (p *SignalProcessor) Process(ctx context.Context, raw RawSignal, payload []byte) Result {
	if p.Metrics != nil {
		p.Metrics.SignalsReceived.Inc()
	}

	sig, procErr := raw.parse()

	var conf *gateway.OrderConfirmation
	if procErr == nil {
		start := time.Now()
		conf, procErr = p.Gateway.PlaceMarketOrder(ctx, sig.Symbol, sig.Action, sig.Quantity)
		if p.Metrics != nil {
			p.Metrics.OrderLatency.Observe(time.Since(start).Seconds())
		}
		if procErr != nil {
			procErr = &ExecutionError{Cause: procErr}
		}
	}

	rec := p.buildRecord(sig, payload, conf, procErr)
	if err := p.Ledger.AppendTrade(ctx, rec); err != nil {
		// The append is the only audit trail; its failure outranks a pretty
		// response but must not hide the original execution failure.
		p.Logger.Error("ledger append failed",
			zap.Error(err),
			zap.String("symbol", sig.Symbol),
			zap.String("action", sig.Action),
			zap.NamedError("processing_error", procErr),
		)
		if procErr != nil {
			return Result{Error: procErr.Error()}
		}
		return Result{Error: "order executed but audit record failed: " + err.Error()}
	}
	if p.Metrics != nil {
		p.Metrics.TradesRecorded.WithLabelValues(rec.Status).Inc()
	}

	if procErr != nil {
		p.Logger.Warn("signal rejected",
			zap.Uint64("trade_id", rec.ID),
			zap.String("symbol", sig.Symbol),
			zap.String("action", sig.Action),
			zap.String("kind", rec.ErrorKind),
			zap.Error(procErr),
		)
		return Result{Error: procErr.Error()}
	}

	p.Logger.Info("order placed",
		zap.Uint64("trade_id", rec.ID),
		zap.String("symbol", sig.Symbol),
		zap.String("action", sig.Action),
		zap.Float64("qty", sig.Quantity),
		zap.String("client_order_id", rec.ClientOrderID),
	)
	return Result{Status: models.StatusSuccess}
}

// buildRecord stamps the outcome time here, at the moment of determination,
// not from anything the caller sent.
func (p *SignalProcessor) buildRecord(sig Signal, payload []byte, conf *gateway.OrderConfirmation, procErr error) *models.TradeRecord {
	rec := &models.TradeRecord{
		Action:          sig.Action,
		Symbol:          sig.Symbol,
		Quantity:        sig.Quantity,
		EntryPrice:      sig.EntryPrice,
		StopLossPrice:   sig.StopLossPrice,
		TakeProfitPrice: sig.TakeProfitPrice,
		Timestamp:       time.Now().UTC(),
		Status:          models.StatusSuccess,
	}
	if len(payload) > 0 {
		rec.Payload = datatypes.JSON(payload)
	}
	if conf != nil {
		rec.ClientOrderID = conf.ClientOrderID
	}
	if procErr != nil {
		rec.Status = models.StatusError
		rec.ErrorKind = errorKind(procErr)
		rec.ErrorDetail = procErr.Error()
	}
	return rec
}
