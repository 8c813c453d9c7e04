package hud

// Multi fans every call out to each presenter in order.
type Multi []Presenter

var _ Presenter = Multi(nil)

func (m Multi) SetVisible(visible bool) {
	for _, p := range m {
		p.SetVisible(visible)
	}
}

func (m Multi) SetHeading(degrees float32) {
	for _, p := range m {
		p.SetHeading(degrees)
	}
}

func (m Multi) SetLocationText(name, body string) {
	for _, p := range m {
		p.SetLocationText(name, body)
	}
}

func (m Multi) SetHint(text string) {
	for _, p := range m {
		p.SetHint(text)
	}
}

func (m Multi) ShowPopup(title, body string) {
	for _, p := range m {
		p.ShowPopup(title, body)
	}
}

func (m Multi) SetActiveLocationButton(locationID string) {
	for _, p := range m {
		p.SetActiveLocationButton(locationID)
	}
}

func (m Multi) SetOverlayOpacity(alpha float32) {
	for _, p := range m {
		p.SetOverlayOpacity(alpha)
	}
}

// OverlaySink is anything that can draw the transition overlay, such as a renderer.
type OverlaySink interface {
	SetOverlayOpacity(alpha float32)
}

// overlay forwards only the overlay opacity to its sink.
type overlay struct {
	sink OverlaySink
}

// Overlay adapts an OverlaySink into a Presenter that ignores every other HUD update.
//
// Parameters:
//   - sink: the overlay target
//
// Returns:
//   - Presenter: the adapter
func Overlay(sink OverlaySink) Presenter {
	if sink == nil {
		panic("hud: overlay sink cannot be nil")
	}
	return &overlay{sink: sink}
}

func (o *overlay) SetVisible(bool)                 {}
func (o *overlay) SetHeading(float32)              {}
func (o *overlay) SetLocationText(string, string)  {}
func (o *overlay) SetHint(string)                  {}
func (o *overlay) ShowPopup(string, string)        {}
func (o *overlay) SetActiveLocationButton(string)  {}
func (o *overlay) SetOverlayOpacity(alpha float32) { o.sink.SetOverlayOpacity(alpha) }
