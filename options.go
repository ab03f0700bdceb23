package cascade

type options struct {
	tiers    []Tier
	logger   *Logger
	observer Observer
	seed     int64
	seedSet  bool
	initial  []float64
}

// Option configures Cascade constructor behavior.
type Option func(*options)

// WithTiers overrides the precision tier list. Tiers run in the given
// order; tolerances are expected to tighten down the list.
//
// Passing nil or an empty list makes New fail with ErrNoTiers.
func WithTiers(tiers []Tier) Option {
	return func(o *options) {
		o.tiers = append([]Tier(nil), tiers...)
	}
}

// WithLogger configures the structured logger. If nil is passed, logging
// is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithObserver configures a progress observer invoked at iteration and
// segment boundaries. If nil is passed, no callbacks fire.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs == nil {
			obs = NoopObserver{}
		}
		o.observer = obs
	}
}

// WithSeed fixes the seed of the initial random vector, making runs
// fully deterministic. Everything downstream of the initial vector is a
// pure function of the matrix and the tier configuration.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seedSet = true
	}
}

// WithInitialVector supplies the starting eigenvector estimate instead
// of a random one. The vector is copied and normalized to unit 2-norm;
// its length must match the matrix dimension.
func WithInitialVector(x []float64) Option {
	return func(o *options) {
		o.initial = append([]float64(nil), x...)
	}
}
