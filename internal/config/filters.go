package config

// IDFilter is either a static id set or a predicate. When both are present
// the filter matches if either does.
type IDFilter struct {
	IDs   []uint64
	Match func(id uint64) bool
}

func (f IDFilter) Contains(id uint64) bool {
	for _, v := range f.IDs {
		if v == id {
			return true
		}
	}
	if f.Match != nil {
		return f.Match(id)
	}
	return false
}

// RoleFilter matches against a member's full role set. The predicate form
// receives every role the member holds, not one role at a time.
type RoleFilter struct {
	IDs   []uint64
	Match func(roles []uint64) bool
}

func (f RoleFilter) ContainsAny(roles []uint64) bool {
	for _, held := range roles {
		for _, v := range f.IDs {
			if v == held {
				return true
			}
		}
	}
	if f.Match != nil {
		return f.Match(roles)
	}
	return false
}
