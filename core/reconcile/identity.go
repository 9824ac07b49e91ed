package reconcile

import (
	"strconv"
	"strings"
)

// DefaultPrefix tags every effect generated by the engine.
const DefaultPrefix = "collbool_"

// Identity derives effect names from (operation, target, grouping) and
// parses them back. The name is the only record of an effect's provenance.
//
// Format: <prefix><op4>_<len(target)>_<target>_<grouping>
//
// op4 is the lower-cased first four letters of the operation. The decimal
// target length keeps the encoding reversible when names contain '_'.
// A user effect whose name happens to parse is indistinguishable from a
// generated one and will be managed by the engine.
type Identity struct {
	Prefix string
}

// Reference is the provenance decoded from a generated effect name.
type Reference struct {
	Operation Operation
	Target    string
	Grouping  string
}

// NewIdentity returns an Identity using prefix, or DefaultPrefix when empty.
func NewIdentity(prefix string) Identity {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Identity{Prefix: prefix}
}

func (id Identity) prefix() string {
	if id.Prefix == "" {
		return DefaultPrefix
	}
	return id.Prefix
}

// NameFor returns the generated effect name for the triple.
func (id Identity) NameFor(op Operation, target, grouping string) string {
	var b strings.Builder
	b.WriteString(id.prefix())
	b.WriteString(abbrev(op))
	b.WriteByte('_')
	b.WriteString(strconv.Itoa(len(target)))
	b.WriteByte('_')
	b.WriteString(target)
	b.WriteByte('_')
	b.WriteString(grouping)
	return b.String()
}

// OwnedByEngine reports whether name was produced by NameFor.
func (id Identity) OwnedByEngine(name string) bool {
	_, ok := id.References(name)
	return ok
}

// References decodes a generated effect name.
func (id Identity) References(name string) (Reference, bool) {
	rest, ok := strings.CutPrefix(name, id.prefix())
	if !ok {
		return Reference{}, false
	}

	opPart, rest, ok := strings.Cut(rest, "_")
	if !ok {
		return Reference{}, false
	}
	op, ok := operationFromAbbrev(opPart)
	if !ok {
		return Reference{}, false
	}

	lenPart, rest, ok := strings.Cut(rest, "_")
	if !ok {
		return Reference{}, false
	}
	n, err := strconv.Atoi(lenPart)
	if err != nil || n < 0 || strconv.Itoa(n) != lenPart {
		return Reference{}, false
	}
	// target, separator, and a non-empty grouping
	if len(rest) < n+2 || rest[n] != '_' {
		return Reference{}, false
	}

	return Reference{
		Operation: op,
		Target:    rest[:n],
		Grouping:  rest[n+1:],
	}, true
}

func abbrev(op Operation) string {
	s := strings.ToLower(string(op))
	if len(s) > 4 {
		s = s[:4]
	}
	return s
}

func operationFromAbbrev(s string) (Operation, bool) {
	for _, op := range []Operation{OperationDifference, OperationUnion, OperationIntersect} {
		if abbrev(op) == s {
			return op, true
		}
	}
	return "", false
}
