package persist

import (
	"encoding/json"
	"fmt"
)

// Snapshot is every known key of a store in a single JSON document.
// It is used to back up state and to move it between backends.
type Snapshot map[string]json.RawMessage

// Export reads every known key that is set
func Export(kv KV) (Snapshot, error) {
	s := Snapshot{}
	for _, key := range Keys {
		bs, ok, err := kv.Get(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		// theme and quick link may be raw text
		if !json.Valid(bs) {
			bs, _ = json.Marshal(string(bs))
		}
		s[key] = bs
	}
	return s, nil
}

// Import writes every key of the snapshot, after validating all of them
func Import(kv KV, s Snapshot) error {
	if err := s.check(); err != nil {
		return err
	}
	for _, key := range Keys {
		bs, ok := s[key]
		if !ok {
			continue
		}
		if key == KeyTheme || key == KeyQuickLink {
			var str string
			if err := json.Unmarshal(bs, &str); err == nil {
				bs = []byte(str)
			}
		}
		if err := kv.Set(key, bs); err != nil {
			return err
		}
	}
	return nil
}

// check makes sure a snapshot only holds known keys with valid JSON
func (s Snapshot) check() error {
	known := map[string]bool{}
	for _, k := range Keys {
		known[k] = true
	}
	for k, v := range s {
		if !known[k] {
			return fmt.Errorf("%w: %s", ErrInvalidKey, k)
		}
		if !json.Valid(v) {
			return fmt.Errorf("invalid JSON under %s", k)
		}
	}
	return nil
}
