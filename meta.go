package pagemill

// MetaResolver looks up the declared front-matter attributes of a content
// page by its slug. A page with no declared metadata resolves to a zero Meta
// with a nil error; callers must treat absent fields as "fall back to the
// inferred value", never as failure. Errors are reserved for backend faults.
type MetaResolver interface {
	Resolve(slug string) (Meta, error)
}

// MetaMap is an in-memory MetaResolver, typically populated by ScanContent.
type MetaMap map[string]Meta

// Resolve returns the declared metadata for slug, or a zero Meta when the
// slug is unknown.
func (m MetaMap) Resolve(slug string) (Meta, error) {
	return m[slug], nil
}
