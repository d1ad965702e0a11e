package excalidraw

// MaxCognitiveUnits is the recommended upper bound of visual units per scene.
const MaxCognitiveUnits = 9

// Load is the cognitive load breakdown of a scene.
type Load struct {
	Shapes      int  `json:"shapes"`
	Arrows      int  `json:"arrows"`
	Annotations int  `json:"annotations"`
	Frames      int  `json:"frames"`
	Total       int  `json:"total"`
	WithinLimit bool `json:"within_limit"`
}

// Recommendation returns a short verdict for display.
func (l Load) Recommendation() string {
	if l.WithinLimit {
		return "good"
	}
	return "split into multiple diagrams"
}

// CognitiveLoad counts the units a reader has to track. Text bound to a
// container is part of its container, and a group counts once (by its first
// element).
func CognitiveLoad(doc *Document) Load {
	var l Load
	groups := make(map[string]bool)
	for _, e := range doc.Elements {
		if len(e.GroupIDs) > 0 {
			if groups[e.GroupIDs[0]] {
				continue
			}
			groups[e.GroupIDs[0]] = true
		}
		if e.Container() != "" {
			continue
		}
		switch e.Type {
		case TypeRectangle, TypeEllipse, TypeDiamond:
			l.Shapes++
		case TypeArrow, TypeLine:
			l.Arrows++
		case TypeText:
			l.Annotations++
		case TypeFrame:
			l.Frames++
		}
	}
	l.Total = l.Shapes + l.Arrows + l.Annotations + l.Frames
	l.WithinLimit = l.Total <= MaxCognitiveUnits
	return l
}
