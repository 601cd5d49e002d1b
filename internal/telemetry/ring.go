package telemetry

import "github.com/farmfit/farmfit/internal/domain"

// ringBuffer is a fixed-capacity buffer of readings. Once full, new readings
// overwrite the oldest so memory stays bounded per sensor.
type ringBuffer struct {
	data  []domain.SensorReading
	head  int
	count int
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{data: make([]domain.SensorReading, capacity)}
}

func (b *ringBuffer) push(r domain.SensorReading) {
	b.data[b.head] = r
	b.head = (b.head + 1) % len(b.data)
	if b.count < len(b.data) {
		b.count++
	}
}

// snapshot returns readings in insertion order, oldest first
func (b *ringBuffer) snapshot() []domain.SensorReading {
	out := make([]domain.SensorReading, 0, b.count)
	start := b.head - b.count
	if start < 0 {
		start += len(b.data)
	}
	for i := 0; i < b.count; i++ {
		out = append(out, b.data[(start+i)%len(b.data)])
	}
	return out
}

func (b *ringBuffer) len() int { return b.count }
