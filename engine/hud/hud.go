// Package hud carries the tour's heads-up display state to whatever draws it.
package hud

// Presenter receives HUD updates from the tour. Every call is made on the frame goroutine.
type Presenter interface {
	// SetVisible shows or hides the whole HUD.
	//
	// Parameters:
	//   - visible: true while a tour is running
	SetVisible(visible bool)

	// SetHeading updates the compass.
	//
	// Parameters:
	//   - degrees: heading in [0, 360)
	SetHeading(degrees float32)

	// SetLocationText replaces the location panel text.
	//
	// Parameters:
	//   - name: human-readable location name
	//   - body: descriptive body text
	SetLocationText(name, body string)

	// SetHint sets the interaction hint. An empty text hides the hint.
	//
	// Parameters:
	//   - text: hint text
	SetHint(text string)

	// ShowPopup presents a dismissible dialog. It never blocks.
	//
	// Parameters:
	//   - title: dialog title
	//   - body: dialog body
	ShowPopup(title, body string)

	// SetActiveLocationButton highlights the navigation button of a location.
	//
	// Parameters:
	//   - locationID: the active location
	SetActiveLocationButton(locationID string)

	// SetOverlayOpacity sets the opacity of the full-screen transition overlay.
	//
	// Parameters:
	//   - alpha: opacity in [0, 1]
	SetOverlayOpacity(alpha float32)
}

// State is a snapshot of everything the HUD shows.
type State struct {
	Visible        bool    `json:"visible"`
	Heading        float32 `json:"heading"`
	LocationName   string  `json:"locationName"`
	LocationBody   string  `json:"locationBody"`
	Hint           string  `json:"hint,omitempty"`
	ActiveLocation string  `json:"activeLocation,omitempty"`
	OverlayOpacity float32 `json:"overlayOpacity"`
}

// Popup is one ShowPopup call.
type Popup struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// MessageTypeState tags the messages a Hub streams to its clients.
const MessageTypeState = "hud"

// Message is the JSON document a Hub sends to its clients.
type Message struct {
	Type   string  `json:"type"`
	State  State   `json:"state"`
	Popups []Popup `json:"popups,omitempty"`
}
