package arena

// Stats is a point-in-time snapshot of an Arena's occupancy. Unlike the
// live Used/Capacity/Utilization accessors, a Stats value does not change
// underneath the caller once returned.
type Stats struct {
	SizeInUse   uintptr
	Capacity    uintptr
	Utilization float64
}

// Metrics takes a snapshot of the arena's current occupancy. Because
// Alloc only ever advances the cursor, a snapshot taken concurrently with
// allocation is a valid lower bound on the arena's true occupancy at the
// instant it is read.
func (a *Arena[Tag]) Metrics() Stats {
	used := a.Used()
	cap := a.Capacity()
	var util float64
	if cap > 0 {
		util = float64(used) / float64(cap)
	}
	return Stats{
		SizeInUse:   used,
		Capacity:    cap,
		Utilization: util,
	}
}
