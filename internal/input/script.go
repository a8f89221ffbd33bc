package input

// Script replays a fixed sequence of frames, each listing the keys held during
// that frame. Everything is released once the script runs out.
type Script struct {
	frames [][]Key
	pos    int
}

// NewScript returns a script over the given frames.
func NewScript(frames ...[]Key) *Script {
	return &Script{frames: frames}
}

// Repeat returns n frames holding keys.
func Repeat(n int, keys ...Key) [][]Key {
	out := make([][]Key, n)
	for i := range out {
		out[i] = keys
	}
	return out
}

// Then appends frames to the script.
func (s *Script) Then(frames ...[]Key) *Script {
	s.frames = append(s.frames, frames...)
	return s
}

// Done reports whether every frame has been played.
func (s *Script) Done() bool { return s.pos >= len(s.frames) }

// Update implements Producer.
func (s *Script) Update(sink Sink) {
	var held layer
	if s.pos < len(s.frames) {
		for _, k := range s.frames[s.pos] {
			held.Set(k, true)
		}
		s.pos++
	}
	for k, down := range held {
		sink.Set(Key(k), down)
	}
}
