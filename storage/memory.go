package storage

import "encoding/json"

// Memory is an in-process KV with the same semantics as Store. Useful for
// tests and for running the client without a local database file.
type Memory struct {
	entries map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]json.RawMessage)}
}

func (m *Memory) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *Memory) Get(key string, out interface{}) (bool, error) {
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Delete(key string) error {
	delete(m.entries, key)
	return nil
}

// Has reports whether a key is present at all, regardless of its value
func (m *Memory) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}
