package input

import (
	"errors"
	"io"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// HandFrame is one message of the landmark stream. An empty landmark list
// means no hand is visible.
type HandFrame struct {
	Landmarks [][2]float64 `msgpack:"landmarks"`
}

// StreamHands reads msgpack-encoded HandFrames from an external classifier
// process and exposes the latest one as a HandSource.
type StreamHands struct {
	mu   sync.Mutex
	hand Hand
	ok   bool
	err  error
	done chan struct{}
}

// NewStreamHands starts decoding r on its own goroutine. The reader is
// consumed until EOF or the first decode error.
func NewStreamHands(r io.Reader) *StreamHands {
	s := &StreamHands{done: make(chan struct{})}
	go s.run(msgpack.NewDecoder(r))
	return s
}

func (s *StreamHands) run(dec *msgpack.Decoder) {
	defer close(s.done)
	for {
		var f HandFrame
		if err := dec.Decode(&f); err != nil {
			if !errors.Is(err, io.EOF) {
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
			}
			return
		}
		s.store(f)
	}
}

func (s *StreamHands) store(f HandFrame) {
	var h Hand
	if len(f.Landmarks) > 0 {
		h.Landmarks = make([]Point, len(f.Landmarks))
		for i, p := range f.Landmarks {
			h.Landmarks[i] = Point{X: p[0], Y: p[1]}
		}
	}
	s.mu.Lock()
	s.hand = h
	s.ok = len(h.Landmarks) > 0
	s.mu.Unlock()
}

// Latest implements HandSource.
func (s *StreamHands) Latest() (Hand, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hand, s.ok
}

// Err returns the decode error that stopped the stream, if any.
func (s *StreamHands) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done is closed when the stream ends.
func (s *StreamHands) Done() <-chan struct{} { return s.done }
