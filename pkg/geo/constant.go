package geo

const (
	// mean earth radius in meters, same value the android/js map utilities use for offsets.
	earthRadiusM = 6371009.0

	// first sub-query bearing and the step between consecutive ones (degrees).
	firstBearing = 45.0
	bearingStep  = 90.0

	SubQueryCount = 4
)

// SearchAreaFactor scales the offset radius into the radius of the circle drawn around the map center
// that roughly encloses every sub-query result.
const SearchAreaFactor = 1.2
