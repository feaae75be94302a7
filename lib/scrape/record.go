package scrape

// Record is an insertion-ordered mapping of field name to normalized
// value. Field order matters because the first record written to a
// sink decides the header.
type Record struct {
	fields []string
	values map[string]string
}

func NewRecord() Record {
	return Record{values: map[string]string{}}
}

func (r *Record) Set(field, value string) {
	if r.values == nil {
		r.values = map[string]string{}
	}
	if _, seen := r.values[field]; !seen {
		r.fields = append(r.fields, field)
	}
	r.values[field] = value
}

func (r Record) Get(field string) string {
	return r.values[field]
}

func (r Record) Fields() []string {
	return r.fields
}

func (r Record) Values() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = r.values[f]
	}
	return out
}

func (r Record) Len() int {
	return len(r.fields)
}
