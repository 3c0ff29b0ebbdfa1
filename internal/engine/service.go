package engine

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-engine/internal/metrics"
	"github.com/Checker-Finance/rates-engine/internal/pricer"
	"github.com/Checker-Finance/rates-engine/internal/publisher"
	"github.com/Checker-Finance/rates-engine/internal/store"
	"github.com/Checker-Finance/rates-engine/internal/validation"
	"github.com/Checker-Finance/rates-engine/pkg/config"
	"github.com/Checker-Finance/rates-engine/pkg/model"
	"github.com/Checker-Finance/rates-engine/pkg/queue"
)

// Engine consumes raw RFQs from NATS, runs validate->build->price and
// publishes the outcome. Inbound messages land on a bounded queue so a
// burst backpressures the subscription instead of ballooning memory.
type Engine struct {
	cfg       *config.Config
	logger    *zap.Logger
	validator *validation.Validator
	pub       *publisher.Publisher
	store     store.Store
	work      *queue.Bounded[model.RawRFQ]

	wg  sync.WaitGroup
	sub *nats.Subscription
}

// New wires an engine from its collaborators. store may be nil in
// tests; persistence is then skipped.
func New(cfg *config.Config, logger *zap.Logger, validator *validation.Validator,
	pub *publisher.Publisher, st store.Store) *Engine {
	return &Engine{
		cfg:       cfg,
		logger:    logger,
		validator: validator,
		pub:       pub,
		store:     st,
		work:      queue.NewBounded[model.RawRFQ](cfg.QueueDepth),
	}
}

// Start subscribes to the inbound RFQ subject and launches the worker
// pool. Workers run until Stop.
func (e *Engine) Start(ctx context.Context, nc *nats.Conn) error {
	sub, err := nc.Subscribe(e.cfg.InboundSubject, e.handleMessage)
	if err != nil {
		return err
	}
	e.sub = sub

	for i := 0; i < e.cfg.Workers; i++ {
		e.wg.Add(1)
		go e.worker(ctx)
	}

	e.logger.Info("engine.started",
		zap.String("subject", e.cfg.InboundSubject),
		zap.Int("workers", e.cfg.Workers),
		zap.Int("queue_depth", e.cfg.QueueDepth))
	return nil
}

// Stop unsubscribes, shuts the queue down and waits for workers to
// drain the remaining items.
func (e *Engine) Stop() {
	if e.sub != nil {
		_ = e.sub.Unsubscribe()
	}
	e.work.Shutdown()
	e.wg.Wait()
	e.logger.Info("engine.stopped")
}

// handleMessage is the NATS-side producer: it decodes the envelope and
// pushes each RFQ onto the work queue. A full queue blocks here, which
// slows consumption instead of dropping requests.
func (e *Engine) handleMessage(msg *nats.Msg) {
	var env model.Envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		e.logger.Error("engine.envelope_decode_failed", zap.Error(err))
		metrics.IncError("engine", "envelope_decode_failed")
		metrics.IncNATSMessage(msg.Subject, "error")
		return
	}
	metrics.IncNATSMessage(msg.Subject, "ok")

	var batch model.RFQBatch
	if err := json.Unmarshal(env.Payload, &batch); err == nil && len(batch.Items) > 0 {
		for _, rfq := range batch.Items {
			e.enqueue(rfq)
		}
		return
	}

	var rfq model.RawRFQ
	if err := json.Unmarshal(env.Payload, &rfq); err != nil {
		e.logger.Error("engine.payload_decode_failed",
			zap.String("event_type", env.EventType),
			zap.Error(err))
		metrics.IncError("engine", "payload_decode_failed")
		return
	}
	if rfq.ClientID == "" {
		rfq.ClientID = env.ClientID
	}
	e.enqueue(rfq)
}

func (e *Engine) enqueue(rfq model.RawRFQ) {
	if rfq.ReceivedAt.IsZero() {
		rfq.ReceivedAt = time.Now().UTC()
	}
	if err := e.work.Push(rfq); err != nil {
		e.logger.Warn("engine.enqueue_after_shutdown",
			zap.String("request_id", rfq.RequestID))
		metrics.IncError("engine", "enqueue_after_shutdown")
		return
	}
	metrics.SetQueueDepth(e.work.Len())
}

func (e *Engine) worker(ctx context.Context) {
	defer e.wg.Done()
	for {
		rfq, ok := e.work.Pop()
		if !ok {
			return
		}
		metrics.SetQueueDepth(e.work.Len())
		e.process(ctx, rfq)
	}
}

func (e *Engine) process(ctx context.Context, rfq model.RawRFQ) {
	start := time.Now()

	summary := e.ValidateFields(rfq.RequestID, rfq.Fields)
	e.persistValidation(ctx, summary)

	if !summary.Valid {
		rejection := model.RFQRejection{
			RequestID:  rfq.RequestID,
			ClientID:   rfq.ClientID,
			Summary:    summary,
			RejectedAt: time.Now().UTC(),
		}
		if err := e.pub.PublishRFQRejected(ctx, rejection); err != nil {
			metrics.IncError("engine", "publish_rejection_failed")
		}
		metrics.IncRFQ(rfq.Source, "rejected")
		e.logger.Info("engine.rfq_rejected",
			zap.String("request_id", rfq.RequestID),
			zap.Int("errors", summary.Errors))
		return
	}

	quote, err := e.PriceRFQ(rfq)
	if err != nil {
		metrics.IncRFQ(rfq.Source, "error")
		metrics.IncError("engine", "build_failed")
		e.logger.Error("engine.price_request.failed",
			zap.String("request_id", rfq.RequestID),
			zap.Error(err))

		rejection := model.RFQRejection{
			RequestID: rfq.RequestID,
			ClientID:  rfq.ClientID,
			Summary: model.ValidationSummary{
				RequestID: rfq.RequestID,
				Valid:     false,
				Errors:    1,
				Issues: []model.Issue{{
					Severity: validation.SeverityError.String(),
					Field:    "instrument",
					Message:  err.Error(),
				}},
				CheckedAt: time.Now().UTC(),
			},
			RejectedAt: time.Now().UTC(),
		}
		if pubErr := e.pub.PublishRFQRejected(ctx, rejection); pubErr != nil {
			metrics.IncError("engine", "publish_rejection_failed")
		}
		return
	}

	if err := e.pub.PublishQuotePriced(ctx, *quote); err != nil {
		metrics.IncError("engine", "publish_quote_failed")
	}
	e.persistQuote(ctx, *quote)

	metrics.IncRFQ(rfq.Source, "priced")
	metrics.ObserveDuration(metrics.PricingDuration, start, quote.SwaptionKind)
	e.logger.Info("engine.quote_priced",
		zap.String("request_id", rfq.RequestID),
		zap.Float64("price", quote.Price))
}

// ValidateFields runs the rule set over one field mapping and converts
// the report into its wire form.
func (e *Engine) ValidateFields(requestID string, fields map[string]string) model.ValidationSummary {
	report := e.validator.Validate(validation.Fields(fields))

	summary := model.ValidationSummary{
		RequestID: requestID,
		Valid:     report.IsValid(),
		Errors:    report.ErrorCount(),
		Warnings:  report.WarningCount(),
		CheckedAt: time.Now().UTC(),
	}
	for _, res := range report.Results() {
		metrics.IncFinding(res.Field, res.Severity.String())
		summary.Issues = append(summary.Issues, model.Issue{
			Severity:   res.Severity.String(),
			Field:      res.Field,
			Message:    res.Message,
			Suggestion: res.Suggestion,
		})
	}
	return summary
}

// PriceRFQ builds the swaption from an accepted RFQ and prices it.
func (e *Engine) PriceRFQ(rfq model.RawRFQ) (*model.PricedQuote, error) {
	now := rfq.ReceivedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	sw, market, err := BuildSwaption(rfq, now)
	if err != nil {
		return nil, err
	}

	price := pricer.BlackPrice(sw, market.ForwardRate, market.Volatility, market.TimeToExpiry)
	annuity := pricer.Annuity(sw.Underlying(), market.ForwardRate)

	return &model.PricedQuote{
		RequestID:    rfq.RequestID,
		ClientID:     rfq.ClientID,
		SwaptionKind: sw.Kind().String(),
		Style:        sw.Style().String(),
		Notional:     sw.Underlying().Notional(),
		Strike:       sw.Strike(),
		ForwardRate:  market.ForwardRate,
		Volatility:   market.Volatility,
		TimeToExpiry: market.TimeToExpiry,
		Price:        price,
		Annuity:      annuity,
		PricedAt:     time.Now().UTC(),
	}, nil
}

// ImpliedVol builds the swaption from the RFQ fields and backs out the
// volatility matching the observed market price.
func (e *Engine) ImpliedVol(rfq model.RawRFQ, marketPrice, forwardRate, timeToExpiry float64) (float64, error) {
	now := rfq.ReceivedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	sw, _, err := BuildSwaption(rfq, now)
	if err != nil {
		return 0, err
	}
	return pricer.ImpliedVolatility(sw, marketPrice, forwardRate, timeToExpiry), nil
}

func (e *Engine) persistValidation(ctx context.Context, summary model.ValidationSummary) {
	if e.store == nil {
		return
	}
	if err := e.store.RecordValidationEvent(ctx, summary); err != nil {
		metrics.IncError("store", "record_validation_failed")
	}
	if err := e.store.SetJSON(ctx, "report:"+summary.RequestID, summary, e.cfg.QuoteTTL); err != nil {
		metrics.IncError("store", "cache_report_failed")
	}
}

func (e *Engine) persistQuote(ctx context.Context, quote model.PricedQuote) {
	if e.store == nil {
		return
	}
	if err := e.store.RecordPricingEvent(ctx, quote); err != nil {
		metrics.IncError("store", "record_pricing_failed")
	}
	if err := e.store.CacheQuote(ctx, quote, e.cfg.QuoteTTL); err != nil {
		metrics.IncError("store", "cache_quote_failed")
	}
}
