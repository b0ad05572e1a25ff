package model

// Axis identifies one of the three scoring dimensions.
type Axis int

// Scoring axes, in presentation order.
const (
	AxisAccess Axis = iota
	AxisInfra
	AxisCapacity
)

// Axes lists every axis in presentation order.
var Axes = [...]Axis{AxisAccess, AxisInfra, AxisCapacity}

// String returns the short axis key used in JSON payloads.
func (a Axis) String() string {
	switch a {
	case AxisAccess:
		return "access"
	case AxisInfra:
		return "infra"
	case AxisCapacity:
		return "capacity"
	default:
		return "unknown"
	}
}

// Label is the human readable axis name used in insights.
func (a Axis) Label() string {
	switch a {
	case AxisAccess:
		return "usage"
	case AxisInfra:
		return "fixed infrastructure"
	case AxisCapacity:
		return "capacity"
	default:
		return "unknown"
	}
}

// ChartLabel is the axis label used by chart projections.
func (a Axis) ChartLabel() string {
	switch a {
	case AxisAccess:
		return "Internet usage (%)"
	case AxisInfra:
		return "Fixed broadband (subscriptions/100)"
	case AxisCapacity:
		return "International bandwidth (Mbps/user)"
	default:
		return "unknown"
	}
}
