package evict

type (
	// PolicyConfig selects and parameterizes the replacement
	// policy of a [Cache]. Exactly one of [LRU], [LRUK],
	// [TwoQueue], or [ARC] may be passed to [New].
	PolicyConfig interface {
		validate(capacity int) error
	}
	// LRU evicts the least recently used entry. No parameters.
	LRU struct{}
	// LRUK evicts by K-th most recent reference; entries referenced
	// fewer than K times rank below any entry with a full history.
	// K is a deployment-time choice, never inferred; K=1 degenerates
	// to [LRU]. A typical value is 2.
	LRUK struct {
		// K is the per-entry reference history depth. Must be >= 1.
		K int
	}
	// TwoQueue splits capacity into a probationary FIFO and a main
	// recency list; entries are promoted to main only on a repeat
	// reference while still probationary. Single-touch scans are
	// flushed from probation without displacing main residents.
	TwoQueue struct {
		// ProbationaryRatio is the fraction of capacity reserved
		// for the probationary queue, within (0,1). Zero selects
		// [DefaultProbationaryRatio].
		ProbationaryRatio float64
	}
	// ARC self-tunes a split between a recency list and a frequency
	// list, learning from ghost (evicted-key) hits. No parameters.
	ARC struct{}
)

// DefaultProbationaryRatio is used by [TwoQueue]
// when ProbationaryRatio is zero.
const DefaultProbationaryRatio = 0.25

func (LRU) validate(int) error { return nil }

func (config LRUK) validate(int) error {
	if config.K < 1 {
		return historyDepthError(config.K)
	}
	return nil
}

func (config TwoQueue) validate(int) error {
	ratio := config.ProbationaryRatio
	if ratio == 0 {
		return nil
	}
	if ratio <= 0 || ratio >= 1 {
		return ratioError(ratio)
	}
	return nil
}

func (ARC) validate(int) error { return nil }

func (config TwoQueue) ratio() float64 {
	if config.ProbationaryRatio == 0 {
		return DefaultProbationaryRatio
	}
	return config.ProbationaryRatio
}
