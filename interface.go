package vrml

import "strings"

// Category is the role an interface plays on its node kind.
type Category uint8

const (
	CategoryField        Category = iota // initial-value only, not routable
	CategoryExposedField                 // field + set_<name> + <name>_changed
	CategoryEventIn                      // routable input
	CategoryEventOut                     // routable output
)

func (c Category) String() string {
	switch c {
	case CategoryField:
		return "field"
	case CategoryExposedField:
		return "exposedField"
	case CategoryEventIn:
		return "eventIn"
	case CategoryEventOut:
		return "eventOut"
	}
	return "unknown"
}

// readable reports whether interfaces of this category have readable storage.
func (c Category) readable() bool {
	return c == CategoryField || c == CategoryExposedField
}

// accepts reports whether the category can receive events.
func (c Category) accepts() bool {
	return c == CategoryEventIn || c == CategoryExposedField
}

// emits reports whether the category can send events.
func (c Category) emits() bool {
	return c == CategoryEventOut || c == CategoryExposedField
}

// InterfaceDecl is one named member of a node kind.
type InterfaceDecl struct {
	Name     string
	Category Category
	Type     FieldKind
}

// InterfaceSet is a name-unique list of interface declarations, kept in
// declaration order.
type InterfaceSet struct {
	decls []InterfaceDecl
	index map[string]int
}

// Add appends d. It fails with ErrDuplicateInterface if the name is taken,
// or if d would shadow an implicit set_/_changed name of an exposedField.
func (s *InterfaceSet) Add(d InterfaceDecl) error {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[d.Name]; ok {
		return ifaceErr("register", "", d.Name, ErrDuplicateInterface)
	}
	if s.shadowed(d) {
		return ifaceErr("register", "", d.Name, ErrDuplicateInterface)
	}
	s.index[d.Name] = len(s.decls)
	s.decls = append(s.decls, d)
	return nil
}

func (s *InterfaceSet) shadowed(d InterfaceDecl) bool {
	if base, ok := strings.CutPrefix(d.Name, "set_"); ok && d.Category == CategoryEventIn {
		if i, ok := s.index[base]; ok && s.decls[i].Category == CategoryExposedField {
			return true
		}
	}
	if base, ok := strings.CutSuffix(d.Name, "_changed"); ok && d.Category == CategoryEventOut {
		if i, ok := s.index[base]; ok && s.decls[i].Category == CategoryExposedField {
			return true
		}
	}
	if d.Category == CategoryExposedField {
		if i, ok := s.index["set_"+d.Name]; ok && s.decls[i].Category == CategoryEventIn {
			return true
		}
		if i, ok := s.index[d.Name+"_changed"]; ok && s.decls[i].Category == CategoryEventOut {
			return true
		}
	}
	return false
}

// Lookup returns the declaration with the exact name.
func (s *InterfaceSet) Lookup(name string) (InterfaceDecl, bool) {
	i, ok := s.index[name]
	if !ok {
		return InterfaceDecl{}, false
	}
	return s.decls[i], true
}

// Len returns the number of declarations.
func (s *InterfaceSet) Len() int { return len(s.decls) }

// All returns the declarations in order. The returned slice MUST NOT be
// mutated.
func (s *InterfaceSet) All() []InterfaceDecl { return s.decls }

// eventInBase strips the set_ prefix, reporting whether it was present.
func eventInBase(name string) (string, bool) {
	return strings.CutPrefix(name, "set_")
}

// eventOutBase strips the _changed suffix, reporting whether it was present.
func eventOutBase(name string) (string, bool) {
	return strings.CutSuffix(name, "_changed")
}
