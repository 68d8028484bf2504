package league

// League rows are managed by hand in the warehouse; ingestion resolves
// them by provider id and never inserts.
type League struct {
	ID         int64
	ExternalID int64
	Name       string
}
