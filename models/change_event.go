package models

// ChangeEvent is published by the local store after every mutation of a
// collection or of the tombstone set.
type ChangeEvent struct {
	Collection CollectionName
	OwnerID    string
}
