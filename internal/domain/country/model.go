package country

// Country is immutable, pre-seeded reference data. Ingestion only ever
// looks countries up; it never inserts them.
type Country struct {
	Code string
	Name string
}
