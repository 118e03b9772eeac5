package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
)

// RawSignal is the webhook body as received. Numeric fields stay raw because
// TradingView-style senders emit them as either JSON numbers or strings, and
// because a missing optional price must be distinguishable from a malformed
// one.
type RawSignal struct {
	Action          string          `json:"action"`
	Symbol          string          `json:"symbol"`
	Qty             json.RawMessage `json:"qty"`
	EntryPrice      json.RawMessage `json:"entry_price"`
	StopLossPrice   json.RawMessage `json:"sl_price"`
	TakeProfitPrice json.RawMessage `json:"tp_price"`
}

// Signal is the validated form handed to the gateway and the ledger.
type Signal struct {
	Action          string
	Symbol          string
	Quantity        float64
	EntryPrice      float64
	StopLossPrice   float64
	TakeProfitPrice float64
}

// parse validates field by field. The returned Signal carries whatever was
// readable even when err is non-nil, so the audit record reflects the input.
func (r RawSignal) parse() (Signal, error) {
	sig := Signal{
		Action: r.Action,
		Symbol: strings.TrimSpace(r.Symbol),
	}

	if r.Action != ActionBuy && r.Action != ActionSell {
		return sig, &InvalidActionError{Action: r.Action}
	}

	qty, present, err := parseNumeric(r.Qty)
	if !present {
		return sig, &InvalidQuantityError{Reason: "missing qty"}
	}
	if err != nil {
		return sig, &InvalidQuantityError{Reason: err.Error()}
	}
	if qty <= 0 {
		return sig, &InvalidQuantityError{Reason: "qty must be positive"}
	}
	sig.Quantity = qty

	for _, f := range []struct {
		name string
		raw  json.RawMessage
		dst  *float64
	}{
		{"entry_price", r.EntryPrice, &sig.EntryPrice},
		{"sl_price", r.StopLossPrice, &sig.StopLossPrice},
		{"tp_price", r.TakeProfitPrice, &sig.TakeProfitPrice},
	} {
		v, present, err := parseNumeric(f.raw)
		if !present {
			continue
		}
		if err != nil {
			return sig, &InvalidFieldError{Field: f.name, Reason: err.Error()}
		}
		*f.dst = v
	}

	return sig, nil
}

// parseNumeric accepts a JSON number or a numeric string. JSON null counts as
// absent, matching an omitted field.
func parseNumeric(raw json.RawMessage) (value float64, present bool, err error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, true, finiteCheck(num)
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		num, perr := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if perr != nil {
			return 0, true, perr
		}
		return num, true, finiteCheck(num)
	}
	return 0, true, &strconv.NumError{Func: "ParseFloat", Num: string(raw), Err: strconv.ErrSyntax}
}

// finiteCheck rejects Inf and NaN, which strconv.ParseFloat accepts but no
// venue order can carry.
func finiteCheck(v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return &strconv.NumError{Func: "ParseFloat", Num: strconv.FormatFloat(v, 'g', -1, 64), Err: strconv.ErrRange}
	}
	return nil
}
