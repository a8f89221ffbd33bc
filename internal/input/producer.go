package input

// Producer feeds held states into a Sink. The frame loop calls Update once per
// frame before sampling the buffer.
type Producer interface {
	Update(sink Sink)
}

type layer [keyCount]bool

func (l *layer) Set(k Key, down bool) {
	if k < keyCount {
		l[k] = down
	}
}

// Multi combines producers. Each producer writes to its own layer and a key is
// held when any layer holds it, so a keyboard release never cancels a gesture
// pulse on the same key.
type Multi struct {
	producers []Producer
	layers    []layer
}

// NewMulti combines the non-nil producers.
func NewMulti(ps ...Producer) *Multi {
	m := &Multi{}
	for _, p := range ps {
		if p != nil {
			m.producers = append(m.producers, p)
		}
	}
	m.layers = make([]layer, len(m.producers))
	return m
}

// Update runs every producer and writes the merged state to sink.
func (m *Multi) Update(sink Sink) {
	var merged layer
	for i, p := range m.producers {
		p.Update(&m.layers[i])
		for k, down := range m.layers[i] {
			merged[k] = merged[k] || down
		}
	}
	for k, down := range merged {
		sink.Set(Key(k), down)
	}
}
