package port

import "imgeng/internal/core/domain"

type Renderer interface {
	// Render replaces whatever was previously rendered for view.ID with view.
	Render(view domain.View)
}

type Recorder interface {
	// Evaluated counts an evaluation pass for the given trigger.
	Evaluated(trigger string)
	// Ready counts a component becoming ready.
	Ready()
	// SourceBuilt counts a call to the URL builder.
	SourceBuilt()
}
