package theme

import (
	"image/color"
)

// Theme defines the colours used to draw routes, labels and the window
// chrome. A text colour with zero alpha is picked automatically for
// contrast against its plaque.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Behind the image when it does not fill the window
	Foreground color.RGBA // Status bar text
	StatusBar  color.RGBA

	// Routes
	RouteStroke    color.RGBA // Committed routes
	DraftStroke    color.RGBA // The route being drawn
	SelectedStroke color.RGBA // The route being edited
	Marker         color.RGBA // In-progress click markers

	// Labels
	GradePlaque   color.RGBA
	GradeText     color.RGBA
	NamePlaque    color.RGBA
	NameText      color.RGBA
	MessagePlaque color.RGBA
	MessageText   color.RGBA
}

// Default returns the hardcoded default theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:           "Default",
		Background:     color.RGBA{40, 40, 40, 255},
		Foreground:     color.RGBA{230, 230, 230, 255},
		StatusBar:      color.RGBA{24, 24, 24, 255},
		RouteStroke:    color.RGBA{255, 0, 0, 255},
		DraftStroke:    color.RGBA{255, 0, 0, 255},
		SelectedStroke: color.RGBA{255, 215, 0, 255},
		Marker:         color.RGBA{255, 0, 0, 255},
		GradePlaque:    color.RGBA{255, 255, 255, 255},
		GradeText:      color.RGBA{},
		NamePlaque:     color.RGBA{0, 0, 0, 180},
		NameText:       color.RGBA{255, 255, 255, 255},
		MessagePlaque:  color.RGBA{255, 255, 255, 255},
		MessageText:    color.RGBA{0, 0, 0, 255},
	}
}

// Contrast returns black or white, whichever reads better on bg.
func Contrast(bg color.Color) color.RGBA {
	r, g, b, _ := bg.RGBA()
	brightness := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
	if brightness < 128 {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{0, 0, 0, 255}
}

// TextOn returns text unless it is fully transparent, in which case the
// contrast colour for plaque is used.
func TextOn(text, plaque color.RGBA) color.RGBA {
	if text.A == 0 {
		return Contrast(plaque)
	}
	return text
}
