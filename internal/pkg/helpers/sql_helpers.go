package helpers

// OptionalID normalises an optional foreign key coming from a request body.
// Absent, null and non-positive ids all mean "unassigned" and map to nil.
func OptionalID(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	v := *id
	return &v
}

// UniqueIDs drops duplicate ids while keeping first-seen order. The result is
// never nil.
func UniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
