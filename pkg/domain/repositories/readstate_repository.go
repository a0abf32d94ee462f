package repositories

// ReadStateRepository abstracts the persisted set of acknowledged alert ids.
// Ids are the numeric alert id encoding; the store keeps them as an ordered
// list under a single fixed key. Implementations must treat a corrupted or
// missing store as an empty set, never as an error.
//
// Within one session single-writer/single-reader is assumed; concurrent
// sessions sharing the same store race with last-write-wins semantics.
type ReadStateRepository interface {
	LoadReadIDs() ([]int64, error)
	SaveReadIDs(ids []int64) error
}
