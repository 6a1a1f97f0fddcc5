// Package store persists the profile record the editor works on. It is a
// deliberately small file-backed backend with configurable latency and
// failure injection, so the editor can demonstrate every lifecycle state a
// real remote backend would produce.
package store

import "gopkg.in/yaml.v3"

// Record is the profile being edited.
type Record struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Bio   string `yaml:"bio,omitempty"`
}

// IsZero reports whether the record carries no data at all.
func (r Record) IsZero() bool {
	return r.Name == "" && r.Email == "" && r.Bio == ""
}

func marshalRecord(r Record) ([]byte, error) {
	return yaml.Marshal(r)
}

func unmarshalRecord(data []byte) (Record, error) {
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}
