package reconcile

import "sort"

// IsAssignable reports whether candidate may be assigned to any slot of host.
// It is false when host is a member of candidate or when candidate already
// occupies one of host's slots.
func IsAssignable(host ObjectHandle, candidate Grouping) bool {
	if host == nil || candidate == nil {
		return false
	}
	if containsObject(candidate, host.Name()) {
		return false
	}
	settings := host.Settings()
	for _, s := range Slots {
		if settings.Slot(s) == candidate.Name() {
			return false
		}
	}
	return true
}

// IsAssignableTo is IsAssignable for a specific slot: the slot's own current
// value does not count as a duplicate, so re-picking it is allowed.
func IsAssignableTo(host ObjectHandle, slot Slot, candidate Grouping) bool {
	if host == nil || candidate == nil {
		return false
	}
	if containsObject(candidate, host.Name()) {
		return false
	}
	settings := host.Settings()
	for _, s := range Slots {
		if s == slot {
			continue
		}
		if settings.Slot(s) == candidate.Name() {
			return false
		}
	}
	return true
}

// Candidates lists the groupings that may be picked for slot on host,
// sorted by name.
func Candidates(scene SceneGraphSource, host ObjectHandle, slot Slot) []string {
	var names []string
	for _, g := range scene.Groupings() {
		if IsAssignableTo(host, slot, g) {
			names = append(names, g.Name())
		}
	}
	sort.Strings(names)
	return names
}

// usableSlots resolves host's slot assignments, dropping any that would
// violate the assignment rule. Such slots produce no effects rather than
// failing the pass. When two slots hold the same grouping the earlier wins.
func usableSlots(scene SceneGraphSource, host ObjectHandle) []resolvedSlot {
	var out []resolvedSlot
	seen := make(map[string]struct{}, len(Slots))
	for _, a := range host.Settings().Assigned() {
		if _, dup := seen[a.Grouping]; dup {
			continue
		}
		seen[a.Grouping] = struct{}{}

		g, ok := scene.Grouping(a.Grouping)
		if !ok || containsObject(g, host.Name()) {
			continue
		}
		out = append(out, resolvedSlot{slot: a.Slot, op: a.Slot.Operation(), grouping: g})
	}
	return out
}

type resolvedSlot struct {
	slot     Slot
	op       Operation
	grouping Grouping
}

func containsObject(g Grouping, name string) bool {
	for _, o := range g.AllObjects() {
		if o.Name() == name {
			return true
		}
	}
	return false
}

// meshMember reports whether name is a mesh member of g.
func meshMember(g Grouping, name string) bool {
	for _, o := range g.AllObjects() {
		if o.Name() == name {
			return o.Kind() == KindMesh
		}
	}
	return false
}
