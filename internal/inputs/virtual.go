package inputs

import "sync/atomic"

// VirtualAnalogSource reports a sample that can be changed at runtime, e.g. via the API
type VirtualAnalogSource struct {
	ID     string
	sample atomic.Int64
}

func NewVirtualAnalogSource(id string, sample int) *VirtualAnalogSource {
	s := &VirtualAnalogSource{ID: id}
	s.sample.Store(int64(sample))
	return s
}

func (s *VirtualAnalogSource) GetId() string {
	return s.ID
}

func (s *VirtualAnalogSource) ReadRawSample() (int, error) {
	return int(s.sample.Load()), nil
}

func (s *VirtualAnalogSource) SetSample(sample int) {
	s.sample.Store(int64(sample))
}
