package api

import "errors"

// ValidateRequest carries one raw RFQ field mapping for validation.
type ValidateRequest struct {
	RequestID string            `json:"request_id"`
	Fields    map[string]string `json:"fields"`
}

func (r *ValidateRequest) Validate() error {
	if len(r.Fields) == 0 {
		return errors.New("fields is required")
	}
	return nil
}

// PriceRequest carries an RFQ field mapping to validate, build and price.
type PriceRequest struct {
	RequestID string            `json:"request_id"`
	ClientID  string            `json:"client_id"`
	Fields    map[string]string `json:"fields"`
}

func (r *PriceRequest) Validate() error {
	if len(r.Fields) == 0 {
		return errors.New("fields is required")
	}
	return nil
}

// ImpliedVolRequest carries an instrument spec plus the observed market
// price to solve for volatility.
type ImpliedVolRequest struct {
	RequestID    string            `json:"request_id"`
	Fields       map[string]string `json:"fields"`
	MarketPrice  float64           `json:"market_price"`
	ForwardRate  float64           `json:"forward_rate"`
	TimeToExpiry float64           `json:"time_to_expiry"`
}

func (r *ImpliedVolRequest) Validate() error {
	if len(r.Fields) == 0 {
		return errors.New("fields is required")
	}
	if r.MarketPrice < 0 {
		return errors.New("market_price must be non-negative")
	}
	if r.ForwardRate <= 0 {
		return errors.New("forward_rate must be positive")
	}
	if r.TimeToExpiry <= 0 {
		return errors.New("time_to_expiry must be positive")
	}
	return nil
}

// ImpliedVolResponse is the solver result.
type ImpliedVolResponse struct {
	RequestID  string  `json:"request_id"`
	ImpliedVol float64 `json:"implied_vol"`
}
