package recorder

// FetchEvent records one live fetch from the upstream provider.
type FetchEvent struct {
	Base      string
	Source    string // fetcher name
	RateCount int
}

// ConversionEvent records one conversion served to a caller.
type ConversionEvent struct {
	Base   string
	Target string
	Amount float64
	Rate   float64
	Result float64
	Cached bool // true when served without a live fetch
}

// Recorder persists historical usage data for analysis.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	RecordConversion(evt *ConversionEvent) error
	Close() error
}
