package eventtype

// EventType is a (type, detail) pair such as ("Goal", "Normal Goal") or
// ("Card", "Yellow Card"), inserted on first sight.
type EventType struct {
	ID     int64
	Type   string
	Detail string
}
