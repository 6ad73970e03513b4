// Package conference models the conference aggregate: the consistency
// boundary that organizers plan together.
//
// State values are derived purely by folding events (see package
// projection). Nothing outside the projection constructs a changed State;
// callers treat every State as an immutable snapshot and use Clone when they
// need to hand out a copy whose slices may be modified.
package conference
