package drill

import (
	"time"

	"github.com/spektr-org/lens/query"
	"github.com/spektr-org/lens/schema"
)

// ============================================================================
// ZOOM — Range selections → filters with granularity selection
// ============================================================================
// Selecting a region of a time series both narrows the filter and re-picks
// the breakout's bucketing unit. Filter bounds always stay aligned to the
// unit the chart was displayed at, never the re-picked breakout unit.
// ============================================================================

// minBucketCount is the fewest displayed-unit intervals a selection must
// span before the breakout unit is escalated on the ladder.
const minBucketCount = 4

// UpdateDateTimeFilter narrows the query to the selected [start, end]
// range of a temporal column.
//
// The selection snaps to the displayed unit's bucket boundaries: start up
// to the first fully-selected bucket, end down to the bucket holding it.
// While the selection spans fewer than minBucketCount intervals of the
// candidate unit and a coarser unit remains on the ladder, the breakout
// steps to the coarser unit. Filter bounds are then re-aligned to the
// displayed unit. A selection too small to cover a bucket is degenerate
// and leaves the query untouched; a single-bucket selection becomes an
// equality filter at that bucket.
func UpdateDateTimeFilter(q query.Query, col schema.Column, start, end time.Time) (query.Query, bool) {
	sq, ok := structured(q)
	if !ok || col.Ref == nil {
		return q, false
	}

	colUnit := col.Unit
	if colUnit == "" {
		// Unbucketed datetime: a raw range filter, no breakout to re-pick.
		return AddOrReplaceFilter(sq, query.Comparison{
			Op:    query.Between,
			Field: query.BaseOf(col.Ref),
			Args:  []any{start, end},
		})
	}

	s := colUnit.Ceil(start)
	e := colUnit.Truncate(end)

	unit := colUnit
	for unit.Count(s, e) < minBucketCount {
		coarser, ok := unit.Coarser()
		if !ok {
			break
		}
		unit = coarser
	}

	// Final bounds re-align to the displayed unit, whatever the breakout
	// escalated to.
	s = colUnit.Truncate(s)
	e = colUnit.Truncate(e)
	if s.After(e) {
		return q, false
	}

	filterRef := query.Bucket(col.Ref, colUnit)
	var f query.Filter
	if s.Equal(e) {
		f = query.Comparison{Op: query.Equal, Field: filterRef, Args: []any{s}}
	} else {
		f = query.Comparison{Op: query.Between, Field: filterRef, Args: []any{s, e}}
	}

	rebucketed, _ := AddOrReplaceBreakout(sq, query.Bucket(col.Ref, unit))
	return AddOrReplaceFilter(rebucketed, f)
}

// UpdateNumericFilter narrows a numeric column to the selected value range.
func UpdateNumericFilter(q query.Query, col schema.Column, min, max float64) (query.Query, bool) {
	sq, ok := structured(q)
	if !ok || col.Ref == nil {
		return q, false
	}
	return AddOrReplaceFilter(sq, query.Comparison{
		Op:    query.Between,
		Field: query.BaseOf(col.Ref),
		Args:  []any{min, max},
	})
}

// LatLonBounds is a map-selection bounding box: north, west, south, east.
type LatLonBounds struct {
	LatMax float64
	LonMin float64
	LatMin float64
	LonMax float64
}

// UpdateLatLonFilter narrows a coordinate pair to the selected bounding
// box.
func UpdateLatLonFilter(q query.Query, latCol, lonCol schema.Column, bounds LatLonBounds) (query.Query, bool) {
	sq, ok := structured(q)
	if !ok || latCol.Ref == nil || lonCol.Ref == nil {
		return q, false
	}
	return AddOrReplaceFilter(sq, query.InsideFilter{
		LatField: query.BaseOf(latCol.Ref),
		LonField: query.BaseOf(lonCol.Ref),
		LatMax:   bounds.LatMax,
		LonMin:   bounds.LonMin,
		LatMin:   bounds.LatMin,
		LonMax:   bounds.LonMax,
	})
}
