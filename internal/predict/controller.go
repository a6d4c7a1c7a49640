package predict

import (
	"context"
	"errors"
	"time"

	"github.com/jwulff/cineai/internal/classifier"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single prediction call.
const DefaultTimeout = 30 * time.Second

// Predictor is the classification endpoint as seen by the controller.
type Predictor interface {
	Predict(ctx context.Context, req classifier.PredictRequest) (classifier.PredictResponse, error)
}

// Controller owns the ViewState and the prediction request lifecycle.
//
// Submit and Apply mutate state and must be called from a single goroutine
// (the UI event loop). Call.Do performs the network round trip and may run
// anywhere; it never touches controller state.
type Controller struct {
	client  Predictor
	timeout time.Duration
	logger  *zap.Logger

	state ViewState
	seq   uint64
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a controller in the Idle phase.
func NewController(client Predictor, opts ...ControllerOption) *Controller {
	c := &Controller{
		client:  client,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
		state:   idleState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current view state.
func (c *Controller) State() ViewState { return c.state }

// Busy reports whether a prediction is in flight.
func (c *Controller) Busy() bool { return c.state.Phase == Submitting }

// Call is one issued prediction request.
type Call struct {
	seq     uint64
	text    ValidText
	client  Predictor
	timeout time.Duration
	logger  *zap.Logger
}

// Seq is the submission sequence number the call belongs to.
func (call *Call) Seq() uint64 { return call.seq }

// Resolution is the outcome of a Call, to be handed back to Apply.
type Resolution struct {
	Seq    uint64
	Result *Result
	Err    error
}

// Submit starts a prediction cycle. It returns nil when no request should be
// made: either a request is already in flight (state unchanged) or the text
// failed validation (state becomes Failed).
func (c *Controller) Submit(text string) *Call {
	if c.state.Phase == Submitting {
		c.logger.Debug("submit ignored, request in flight", zap.Uint64("seq", c.seq))
		return nil
	}

	valid, err := Validate(text)
	if err != nil {
		c.logger.Info("submission rejected", zap.Error(err))
		c.state = failedState(FailureValidation, ValidationMessage)
		return nil
	}

	c.seq++
	c.state = submittingState()
	c.logger.Info("submission started",
		zap.Uint64("seq", c.seq),
		zap.Int("chars", TextLength(text)))

	return &Call{
		seq:     c.seq,
		text:    valid,
		client:  c.client,
		timeout: c.timeout,
		logger:  c.logger,
	}
}

// Do performs the request under the controller timeout.
func (call *Call) Do(ctx context.Context) Resolution {
	ctx, cancel := context.WithTimeout(ctx, call.timeout)
	defer cancel()

	resp, err := call.client.Predict(ctx, classifier.PredictRequest{Text: string(call.text)})
	if err != nil {
		return Resolution{Seq: call.seq, Err: err}
	}

	r := ResultFromResponse(resp)
	checkRanking(call.logger, r)
	return Resolution{Seq: call.seq, Result: &r}
}

// Apply folds a resolution into the state. It reports false, and leaves the
// state untouched, when the resolution is stale: it is not from the latest
// submission or no submission is in flight.
func (c *Controller) Apply(res Resolution) bool {
	if res.Seq != c.seq || c.state.Phase != Submitting {
		c.logger.Debug("stale resolution discarded",
			zap.Uint64("seq", res.Seq),
			zap.Uint64("latest", c.seq))
		return false
	}

	if res.Err == nil && res.Result != nil {
		c.state = succeededState(*res.Result)
		c.logger.Info("prediction succeeded",
			zap.Uint64("seq", res.Seq),
			zap.String("genre", res.Result.PredictedGenre),
			zap.Float64("confidence", res.Result.Confidence))
		return true
	}

	kind, msg := classify(res.Err)
	c.state = failedState(kind, msg)
	c.logger.Warn("prediction failed",
		zap.Uint64("seq", res.Seq),
		zap.Stringer("kind", kind),
		zap.Error(res.Err))
	return true
}

// Predict runs a whole cycle synchronously and returns the resulting state.
func (c *Controller) Predict(ctx context.Context, text string) ViewState {
	call := c.Submit(text)
	if call == nil {
		return c.state
	}
	c.Apply(call.Do(ctx))
	return c.state
}

func classify(err error) (FailureKind, string) {
	if err == nil {
		return FailureMalformed, ConnectivityMessage
	}
	var se *classifier.StatusError
	if errors.As(err, &se) {
		if se.Detail != "" {
			return FailureService, se.Detail
		}
		return FailureService, ConnectivityMessage
	}
	if errors.Is(err, classifier.ErrMalformed) {
		return FailureMalformed, ConnectivityMessage
	}
	return FailureTransport, ConnectivityMessage
}

// checkRanking warns when the service ordering looks off. Data passes through
// unchanged either way.
func checkRanking(logger *zap.Logger, r Result) {
	top := r.TopProbabilities
	if len(top) == 0 {
		logger.Warn("prediction has no ranked probabilities", zap.String("genre", r.PredictedGenre))
		return
	}
	if top[0].Genre != r.PredictedGenre {
		logger.Warn("top ranked genre differs from prediction",
			zap.String("predicted", r.PredictedGenre),
			zap.String("top", top[0].Genre))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Probability > top[i-1].Probability {
			logger.Warn("ranked probabilities not descending", zap.Int("index", i))
			return
		}
	}
}
