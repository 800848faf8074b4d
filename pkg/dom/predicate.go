package dom

// Predicate selects elements.
type Predicate func(*Element) bool

// Tag matches elements with the given (lower-case) tag name.
func Tag(name string) Predicate {
	return func(e *Element) bool { return e.tag == name }
}

// Class matches elements whose class list contains name.
func Class(name string) Predicate {
	return func(e *Element) bool { return e.HasClass(name) }
}

// HasAttr matches elements that carry the attribute, whatever its value.
func HasAttr(key string) Predicate {
	return func(e *Element) bool {
		_, ok := e.attrs[key]
		return ok
	}
}

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(e *Element) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(preds ...Predicate) Predicate {
	return func(e *Element) bool {
		for _, p := range preds {
			if p(e) {
				return true
			}
		}
		return false
	}
}

// Containing matches elements that have a descendant matching inner.
func Containing(inner Predicate) Predicate {
	return func(e *Element) bool { return e.FirstDescendant(inner) != nil }
}
