package models

// SignalPhase is the green allocation for one approach road. GreenTime is in
// whole seconds.
type SignalPhase struct {
	Approach          LocationID `json:"approach"`
	ApproachName      string     `json:"approach_name"`
	GreenTime         float64    `json:"green_time"`
	Priority          float64    `json:"priority"`
	EmergencyPriority bool       `json:"emergency_priority"`
}

type IntersectionPlan struct {
	Intersection     LocationID    `json:"intersection"`
	IntersectionName string        `json:"intersection_name"`
	Approaches       int           `json:"approaches"`
	CycleTime        int           `json:"cycle_time"`
	SignalPhases     []SignalPhase `json:"signal_phases"`
}
