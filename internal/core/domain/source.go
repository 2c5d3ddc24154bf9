package domain

import "strings"

// SourceRequest carries everything needed to compose the final host, path and directives.
type SourceRequest struct {
	Host        string
	Path        string
	StripPrefix string
	Directives  Directives
	// Requested is the rounded width/height that went into DeriveSize. It backs up Derived when a dimension
	// was dropped by the fit mode.
	Requested  DerivedSize
	Derived    DerivedSize
	DeriveSize bool
}

// BuildSource composes the descriptor handed to the URL builder. The prefix is removed once, at its first
// occurrence.
func BuildSource(req SourceRequest) SourceDescriptor {
	path := req.Path
	if req.StripPrefix != "" {
		path = strings.Replace(path, req.StripPrefix, "", 1)
	}

	directives := req.Directives.Clone()

	switch {
	case directives.NoOptimization():
		directives = directives.Without(DirectiveWidth, DirectiveHeight)
	case req.DeriveSize:
		directives = directives.
			withDimension(DirectiveWidth, firstValid(req.Derived.Width, req.Requested.Width)).
			withDimension(DirectiveHeight, firstValid(req.Derived.Height, req.Requested.Height))
	}

	return SourceDescriptor{
		FinalHost:       req.Host,
		FinalPath:       path,
		FinalDirectives: directives,
	}
}

func firstValid(dims ...Dimension) Dimension {
	for _, d := range dims {
		if d.Valid {
			return d
		}
	}
	return Dimension{}
}
