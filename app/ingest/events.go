package ingest

// Stage names one step of the ingestion pipeline.
type Stage string

const (
	StageFetching  Stage = "fetching"
	StageAnalyzing Stage = "analyzing"
	StageCompleted Stage = "completed"
	StageError     Stage = "error"
)

// Event is one progress notification emitted during ingestion.
type Event struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Sink receives progress events. Implementations must not block: a stalled
// consumer only loses events, it never stalls the pipeline.
type Sink interface {
	Emit(event Event)
}

// ChanSink adapts a buffered channel to the Sink interface. When the buffer
// is full the event is dropped instead of blocking the pipeline.
type ChanSink struct {
	ch chan Event
}

func NewChanSink(buffer int) *ChanSink {
	return &ChanSink{ch: make(chan Event, buffer)}
}

func (s *ChanSink) Emit(event Event) {
	select {
	case s.ch <- event:
	default:
	}
}

func (s *ChanSink) Events() <-chan Event {
	return s.ch
}

// Close signals consumers that no further events will arrive.
func (s *ChanSink) Close() {
	close(s.ch)
}

func emit(sink Sink, event Event) {
	if sink != nil {
		sink.Emit(event)
	}
}
