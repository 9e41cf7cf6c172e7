// internal/app/features/statcard/registration.go
package statcard

import (
	"sync"

	"github.com/dalemusser/statcard/internal/app/system/chartengine"
	"go.uber.org/zap"
)

// Strategy registers the doughnut capability with one engine entry point.
type Strategy interface {
	Name() string
	Register() error
}

// Strategy names, as reported by Registration.Strategy.
const (
	StrategyBulkAdd = "add-controllers"
	StrategyPerItem = "register-each"
	StrategyNone    = "none"
)

// bulkAddStrategy hands the doughnut controller to AddControllers. It is
// sufficient on its own; nothing else is registered.
type bulkAddStrategy struct {
	adder chartengine.ControllerAdder
}

func (s bulkAddStrategy) Name() string { return StrategyBulkAdd }

func (s bulkAddStrategy) Register() error {
	return s.adder.AddControllers(chartengine.DoughnutController)
}

// perItemStrategy registers every item of the default bundle one by one.
type perItemStrategy struct {
	reg    chartengine.ItemRegisterer
	bundle func() []chartengine.Component
}

func (s perItemStrategy) Name() string { return StrategyPerItem }

func (s perItemStrategy) Register() error {
	for _, item := range s.bundle() {
		if err := s.reg.Register(item); err != nil {
			return err
		}
	}
	return nil
}

// noopStrategy is selected for engines without any registration entry point.
type noopStrategy struct{}

func (noopStrategy) Name() string    { return StrategyNone }
func (noopStrategy) Register() error { return nil }

// SelectStrategy probes engine for its registration entry points. The bulk
// entry point wins when both are present.
func SelectStrategy(engine any) Strategy {
	if adder, ok := engine.(chartengine.ControllerAdder); ok {
		return bulkAddStrategy{adder: adder}
	}
	if reg, ok := engine.(chartengine.ItemRegisterer); ok {
		return perItemStrategy{reg: reg, bundle: chartengine.Registerables}
	}
	return noopStrategy{}
}

// Registration makes sure the doughnut capability is registered before the
// first render. The strategy is chosen once, at construction. Ensure is safe
// to call on every render and from concurrent requests.
type Registration struct {
	mu       sync.Mutex
	done     bool
	attempts int
	strategy Strategy
	log      *zap.Logger
}

// NewRegistration probes engine and caches the strategy for its lifetime.
func NewRegistration(engine any, logger *zap.Logger) *Registration {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := SelectStrategy(engine)
	logger.Debug("chart registration strategy selected", zap.String("strategy", s.Name()))
	return &Registration{strategy: s, log: logger}
}

// NewRegistrationWithStrategy uses s as is, without probing.
func NewRegistrationWithStrategy(s Strategy, logger *zap.Logger) *Registration {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registration{strategy: s, log: logger}
}

// Ensure runs the strategy unless a previous call already succeeded.
// Failures are logged, never returned; the next call tries again.
func (r *Registration) Ensure() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return
	}
	r.attempts++
	if err := r.strategy.Register(); err != nil {
		r.log.Warn("chart registration failed",
			zap.String("strategy", r.strategy.Name()),
			zap.Int("attempt", r.attempts),
			zap.Error(err))
		return
	}
	r.done = true
	if r.strategy.Name() == StrategyNone {
		r.log.Warn("chart engine exposes no registration entry point; doughnut may render blank")
		return
	}
	r.log.Info("chart doughnut capability registered", zap.String("strategy", r.strategy.Name()))
}

// Done reports whether a registration attempt has succeeded.
func (r *Registration) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Strategy returns the name of the cached strategy.
func (r *Registration) Strategy() string {
	return r.strategy.Name()
}
