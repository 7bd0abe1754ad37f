package srs

// Params defines all configurable parameters for the SRS algorithm
type Params struct {
	// MinEaseFactor is the floor applied after every ease factor update.
	MinEaseFactor float64

	// PassThreshold is the lowest quality counted as a successful recall.
	PassThreshold int

	// Intervals used for the first two successful recalls
	FirstInterval  int
	SecondInterval int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	MinEaseFactor  float64
	PassThreshold  int
	FirstInterval  int
	SecondInterval int
}

// Quality bounds accepted by the scheduler.
const (
	MinQuality = 0
	MaxQuality = 5
)

// NewDefaultParams creates a new Params instance with the classic SM-2 values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:  1.3,
		PassThreshold:  3,
		FirstInterval:  1,
		SecondInterval: 6,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero values in config keep the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.PassThreshold > MinQuality && config.PassThreshold <= MaxQuality {
		params.PassThreshold = config.PassThreshold
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}

	return params
}
