package lockfile

// Record is one flattened (entry, descriptor) pair.
type Record struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	// Range is the descriptor range that resolves to Version.
	Range string `json:"descriptor"`
}

// Records flattens the lockfile into one record per descriptor, in entry order.
func (l *Lockfile) Records() []Record {
	var records []Record
	for _, e := range l.Entries {
		for _, d := range e.Descriptors {
			records = append(records, Record{
				Name:    e.Name,
				Version: e.Version,
				Range:   d.Range,
			})
		}
	}
	return records
}
