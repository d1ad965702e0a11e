package excalidraw

import (
	"encoding/json"
	"fmt"
)

// Document constants.
const (
	DocumentType    = "excalidraw"
	DocumentVersion = 2
	DocumentSource  = "https://excalidraw.com"
)

// Element types.
const (
	TypeRectangle = "rectangle"
	TypeEllipse   = "ellipse"
	TypeDiamond   = "diamond"
	TypeText      = "text"
	TypeArrow     = "arrow"
	TypeLine      = "line"
	TypeFrame     = "frame"
)

// IsShape reports whether an element type is a bindable shape.
func IsShape(typ string) bool {
	switch typ {
	case TypeRectangle, TypeEllipse, TypeDiamond:
		return true
	}
	return false
}

// Document is an Excalidraw scene.
type Document struct {
	Type     string         `json:"type"`
	Version  int            `json:"version"`
	Source   string         `json:"source"`
	Elements []Element      `json:"elements"`
	AppState AppState       `json:"appState"`
	Files    map[string]any `json:"files"`
}

// AppState carries the editor settings stored with a scene.
// A nil GridSize serializes as null (grid disabled).
type AppState struct {
	ViewBackgroundColor string `json:"viewBackgroundColor"`
	GridSize            *int   `json:"gridSize"`
}

// Element is one scene element. Text and arrow specific fields live in the
// embedded TextProps and ArrowProps, which are nil for other element types.
type Element struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	X               float64    `json:"x"`
	Y               float64    `json:"y"`
	Width           float64    `json:"width"`
	Height          float64    `json:"height"`
	Angle           float64    `json:"angle"`
	StrokeColor     string     `json:"strokeColor"`
	BackgroundColor string     `json:"backgroundColor"`
	FillStyle       string     `json:"fillStyle"`
	StrokeWidth     float64    `json:"strokeWidth"`
	StrokeStyle     string     `json:"strokeStyle"`
	Roughness       int        `json:"roughness"`
	Opacity         int        `json:"opacity"`
	GroupIDs        []string   `json:"groupIds"`
	FrameID         *string    `json:"frameId"`
	Roundness       *Roundness `json:"roundness"`
	Seed            int        `json:"seed"`
	Version         int        `json:"version"`
	VersionNonce    int        `json:"versionNonce"`
	IsDeleted       bool       `json:"isDeleted"`
	BoundElements   []BoundRef `json:"boundElements"`
	Updated         int64      `json:"updated"`
	Link            *string    `json:"link"`
	Locked          bool       `json:"locked"`

	*TextProps
	*ArrowProps
}

// Roundness selects the corner rounding algorithm.
type Roundness struct {
	Type int `json:"type"`
}

// BoundRef is an entry of an element's boundElements list.
type BoundRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// TextProps holds the fields of text elements. ContainerID is nil for free
// standing text.
type TextProps struct {
	Text          string  `json:"text"`
	OriginalText  string  `json:"originalText"`
	FontSize      float64 `json:"fontSize"`
	FontFamily    int     `json:"fontFamily"`
	TextAlign     string  `json:"textAlign"`
	VerticalAlign string  `json:"verticalAlign"`
	ContainerID   *string `json:"containerId"`
	LineHeight    float64 `json:"lineHeight"`
}

// ArrowProps holds the fields of arrow elements. Points are relative to the
// element's x/y.
type ArrowProps struct {
	Points             [][2]float64 `json:"points"`
	LastCommittedPoint *[2]float64  `json:"lastCommittedPoint"`
	StartBinding       *Binding     `json:"startBinding"`
	EndBinding         *Binding     `json:"endBinding"`
	StartArrowhead     *string      `json:"startArrowhead"`
	EndArrowhead       *string      `json:"endArrowhead"`
}

// Binding anchors one end of an arrow to a shape.
type Binding struct {
	ElementID  string     `json:"elementId"`
	Focus      float64    `json:"focus"`
	Gap        float64    `json:"gap"`
	FixedPoint [2]float64 `json:"fixedPoint"`
}

// Container returns the container ID of a text element, or "".
func (e Element) Container() string {
	if e.TextProps == nil || e.ContainerID == nil {
		return ""
	}
	return *e.ContainerID
}

// Find returns the element with the given ID.
func (d *Document) Find(id string) (*Element, bool) {
	for i := range d.Elements {
		if d.Elements[i].ID == id {
			return &d.Elements[i], true
		}
	}
	return nil, false
}

// Count returns the number of elements of the given type.
func (d *Document) Count(typ string) int {
	n := 0
	for _, e := range d.Elements {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// Marshal encodes a document as indented JSON.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal excalidraw: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes a document.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal excalidraw: %w", err)
	}
	return &doc, nil
}

func strPtr(s string) *string { return &s }
