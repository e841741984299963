package actuators

import "sync"

// VirtualActuator keeps the setpoint in memory
type VirtualActuator struct {
	ID string

	mu     sync.Mutex
	value  int
	writes int
}

func (a *VirtualActuator) GetId() string {
	return a.ID
}

func (a *VirtualActuator) SetValue(value int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.value = value
	a.writes++
	return nil
}

func (a *VirtualActuator) GetValue() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value, nil
}

// Writes returns how often SetValue was called
func (a *VirtualActuator) Writes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writes
}
