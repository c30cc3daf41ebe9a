package mergeop

// OpContext carries per-call options through a Program run. A nil
// *OpContext is valid and means the defaults.
type OpContext struct {
	// ForcePanic makes every find behave as if panic="true" were set.
	ForcePanic bool
}

func (c *OpContext) forcePanic() bool {
	return c != nil && c.ForcePanic
}
