package can

// InvertFilter flips a filter's sense: an inverted filter matches every
// frame its non-inverted form would reject. Same bit as CAN_INV_FILTER.
const InvertFilter = 0x20000000

// Filter is a stateless id/mask acceptance filter. A frame matches when
// (frame_id & Mask) == (ID & Mask) and the width variant agrees; setting
// InvertFilter in ID flips the sense. A zero-constructed literal filters in
// the standard space; use the extended constructors for 29-bit filters.
// Filters are plain values; there is no registry of known identifiers.
type Filter struct {
	ID   uint32
	Mask uint32

	extended bool
}

// NewStandardFilter matches exactly the given standard identifier.
func NewStandardFilter(id Identifier) Filter {
	return Filter{ID: id.Raw() & MaxStandardID, Mask: MaxStandardID}
}

// NewStandardInvFilter matches every standard identifier except the given one.
func NewStandardInvFilter(id Identifier) Filter {
	return Filter{ID: (id.Raw() & MaxStandardID) | InvertFilter, Mask: MaxStandardID}
}

// NewExtendedFilter matches exactly the given extended identifier.
func NewExtendedFilter(id Identifier) Filter {
	return Filter{ID: id.Raw() & MaxExtendedID, Mask: MaxExtendedID, extended: true}
}

// NewExtendedInvFilter matches every extended identifier except the given one.
func NewExtendedInvFilter(id Identifier) Filter {
	return Filter{ID: (id.Raw() & MaxExtendedID) | InvertFilter, Mask: MaxExtendedID, extended: true}
}

// Matches reports whether the filter accepts the frame.
func (ft Filter) Matches(f Frame) bool {
	if f.ID().IsExtended() != ft.extended {
		return false
	}
	want := ft.ID &^ InvertFilter
	hit := f.ID().Raw()&ft.Mask == want&ft.Mask
	if ft.ID&InvertFilter != 0 {
		return !hit
	}
	return hit
}
