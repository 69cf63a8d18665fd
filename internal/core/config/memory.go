package config

// MapStore is an in-memory Store.
type MapStore map[string]string

func (m MapStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapStore) Set(key, value string) error {
	m[key] = value
	return nil
}

// MapInputs is an in-memory Inputs.
type MapInputs map[string]string

func (m MapInputs) Input(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
