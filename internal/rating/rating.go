// Package rating maps p-values to a qualitative randomness rating.
package rating

// Rating is a four-level randomness grade, ordered worst to best
type Rating int

const (
	Poor Rating = iota
	Fair
	Good
	Excellent
)

// Lower bounds of each band. Bands are half-open: [bound, next bound).
const (
	ExcellentThreshold = 0.20
	GoodThreshold      = 0.05
	FairThreshold      = 0.01
)

func (r Rating) String() string {
	switch r {
	case Excellent:
		return "Excellent"
	case Good:
		return "Good"
	case Fair:
		return "Fair"
	case Poor:
		return "Poor"
	default:
		return "Unknown"
	}
}

// Emoji returns the traffic-light marker for the rating
func (r Rating) Emoji() string {
	switch r {
	case Excellent:
		return "🟢"
	case Good:
		return "🟡"
	case Fair:
		return "🟠"
	default:
		return "🔴"
	}
}

// Classify maps a p-value to a Rating, checking bands high to low
func Classify(pValue float64) Rating {
	switch {
	case pValue >= ExcellentThreshold:
		return Excellent
	case pValue >= GoodThreshold:
		return Good
	case pValue >= FairThreshold:
		return Fair
	default:
		return Poor
	}
}

// Scale is the legend line describing every band
const Scale = "🟢 ≥ 0.20 (Excellent), 🟡 ≥ 0.05 (Good), 🟠 ≥ 0.01 (Fair), 🔴 < 0.01 (Poor)"
