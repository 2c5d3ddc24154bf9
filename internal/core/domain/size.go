package domain

// SizeState is the derived size together with the request that last changed it. Cropbox keeps only the width,
// so growth has to be measured against the request rather than the derived size.
type SizeState struct {
	Derived DerivedSize
	Basis   DerivedSize
}

// DeriveSize reconciles a requested width/height with the fit mode and returns the size to use for the size
// directives and img attributes. Requested dimensions are expected to be rounded already (see Pixels).
//
// Cropbox, letterbox and stretch only ever grow: a request that is not larger than the basis in either
// dimension returns state unchanged. Every other fit keeps a single dimension so the image keeps its natural
// aspect ratio on the other axis.
func DeriveSize(width, height Dimension, fit FitMode, state SizeState) SizeState {
	requested := DerivedSize{Width: width, Height: height}

	switch fit {
	case FitCropbox:
		if !grows(requested, state.Basis) {
			return state
		}
		if width.Valid {
			return SizeState{Derived: DerivedSize{Width: width}, Basis: requested}
		}
		// A height-only request grows the box without setting anything. Kept as is until the service is confirmed
		// to expect a height directive for cropbox.
		return SizeState{Derived: state.Derived, Basis: requested}
	case FitLetterbox, FitStretch:
		if !grows(requested, state.Basis) {
			return state
		}
		return SizeState{Derived: requested, Basis: requested}
	default:
		if width.Valid && width.Px >= height.OrZero() {
			return SizeState{Derived: DerivedSize{Width: width}, Basis: requested}
		}
		if height.Valid {
			return SizeState{Derived: DerivedSize{Height: height}, Basis: requested}
		}
		return SizeState{Basis: requested}
	}
}

func grows(requested, basis DerivedSize) bool {
	return (requested.Width.Valid && requested.Width.Px > basis.Width.OrZero()) ||
		(requested.Height.Valid && requested.Height.Px > basis.Height.OrZero())
}
