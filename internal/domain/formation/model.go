package formation

// Formation is a tactical layout label such as "4-3-3".
type Formation struct {
	ID    int64
	Label string
}
