// Package format defines the enumerated on-disk codes of the whisper format.
package format

import "fmt"

// AggregationMethod is the on-disk code selecting how points are consolidated
// when they propagate from a fine archive into a coarser one.
//
// Codes come from untrusted input; values outside the known range are carried
// through as-is and report themselves as unrecognized rather than failing the
// decode. Use Known to distinguish.
type AggregationMethod uint32

const (
	AggregationAverage  AggregationMethod = 0x1 // arithmetic mean of valid points
	AggregationSum      AggregationMethod = 0x2 // sum of valid points
	AggregationLast     AggregationMethod = 0x3 // most recent valid point
	AggregationMax      AggregationMethod = 0x4 // maximum of valid points
	AggregationMin      AggregationMethod = 0x5 // minimum of valid points
	AggregationFirst    AggregationMethod = 0x6 // oldest valid point
	AggregationVariance AggregationMethod = 0x7 // variance of valid points
	AggregationStdDev   AggregationMethod = 0x8 // standard deviation of valid points
	AggregationAbsolute AggregationMethod = 0x9 // absolute value aggregation
)

// Known reports whether the code is one of the documented aggregation methods.
func (m AggregationMethod) Known() bool {
	return m >= AggregationAverage && m <= AggregationAbsolute
}

func (m AggregationMethod) String() string {
	switch m {
	case AggregationAverage:
		return "average"
	case AggregationSum:
		return "sum"
	case AggregationLast:
		return "last"
	case AggregationMax:
		return "max"
	case AggregationMin:
		return "min"
	case AggregationFirst:
		return "first"
	case AggregationVariance:
		return "variance"
	case AggregationStdDev:
		return "stddev"
	case AggregationAbsolute:
		return "absolute"
	default:
		return fmt.Sprintf("unrecognized(%d)", uint32(m))
	}
}
