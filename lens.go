// Package lens turns structured queries into people-readable descriptions
// and click interactions into query mutations.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/lens/describe"
//	    "github.com/spektr-org/lens/drill"
//	)
//
//	frags := describe.Describe(table, q, describe.Options{})
//	fmt.Println(frags.String()) // "Orders, Count, Grouped by Created At"
//
//	zoomed, ok := drill.UpdateDateTimeFilter(q, column, start, end)
//
// Every operation is a pure value transformation: queries go in, new queries
// or fragment sequences come out, and nothing is mutated in place. Rendering,
// persistence, and metadata fetching belong to the caller.
package lens
