package account

import "github.com/google/uuid"

// IDs is an ordered set of account ids. Methods never mutate the receiver.
type IDs []uuid.UUID

// Has reports whether id is in the set.
func (ids IDs) Has(id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// With returns the set with id appended, or the set unchanged if id is present.
func (ids IDs) With(id uuid.UUID) IDs {
	if ids.Has(id) {
		return ids
	}
	out := make(IDs, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}

// Without returns the set with id removed.
func (ids IDs) Without(id uuid.UUID) IDs {
	out := make(IDs, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
