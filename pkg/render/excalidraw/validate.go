package excalidraw

import (
	"encoding/json"
	"fmt"
)

// Report is the outcome of a structural validation. Errors is never nil.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (r *Report) addf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Validate checks a serialized scene for structural integrity.
//
// It reports missing top-level fields, elements without id, type or
// geometry, duplicate IDs, boundElements entries that do not resolve or are
// not referenced back, containerIds that do not resolve, and arrow bindings
// whose target is missing or not a shape. Validate never modifies data and
// returns the same report for the same input.
func Validate(data []byte) Report {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return Report{Errors: []string{fmt.Sprintf("invalid JSON: %v", err)}}
	}
	return validateTree(root)
}

// ValidateDocument serializes doc and validates the result, so it checks
// exactly what a consumer of the JSON would see.
func ValidateDocument(doc *Document) Report {
	data, err := json.Marshal(doc)
	if err != nil {
		return Report{Errors: []string{fmt.Sprintf("marshal: %v", err)}}
	}
	return Validate(data)
}

func validateTree(root any) Report {
	r := Report{Errors: []string{}}

	obj, ok := root.(map[string]any)
	if !ok {
		r.addf("document must be an object")
		return r
	}

	if obj["type"] != DocumentType {
		r.addf("missing or invalid 'type'")
	}
	if v, ok := obj["version"].(float64); !ok || v != DocumentVersion {
		r.addf("version should be %d", DocumentVersion)
	}
	if _, ok := obj["source"].(string); !ok {
		r.addf("missing 'source'")
	}
	if app, ok := obj["appState"].(map[string]any); !ok {
		r.addf("'appState' must be object")
	} else {
		for _, key := range []string{"viewBackgroundColor", "gridSize"} {
			if _, ok := app[key]; !ok {
				r.addf("appState missing '%s'", key)
			}
		}
	}

	list, ok := obj["elements"].([]any)
	if !ok {
		r.addf("'elements' must be array")
		r.Valid = len(r.Errors) == 0
		return r
	}

	elements := make([]map[string]any, len(list))
	byID := make(map[string]map[string]any, len(list))
	for i, raw := range list {
		el, ok := raw.(map[string]any)
		if !ok {
			r.addf("element %d is not an object", i)
			continue
		}
		elements[i] = el
		id, _ := el["id"].(string)
		if id == "" {
			continue
		}
		if _, dup := byID[id]; dup {
			r.addf("duplicate element id %s", id)
			continue
		}
		byID[id] = el
	}

	for i, el := range elements {
		if el == nil {
			continue
		}
		checkFields(&r, i, el)
		checkBoundElements(&r, el, byID)
		checkContainer(&r, el, byID)
		if el["type"] == TypeArrow {
			checkBinding(&r, el, "startBinding", byID)
			checkBinding(&r, el, "endBinding", byID)
		}
	}

	r.Valid = len(r.Errors) == 0
	return r
}

func checkFields(r *Report, i int, el map[string]any) {
	if id, _ := el["id"].(string); id == "" {
		r.addf("element %d missing 'id'", i)
	}
	if typ, _ := el["type"].(string); typ == "" {
		r.addf("element %d missing 'type'", i)
	}
	for _, key := range []string{"x", "y", "width", "height"} {
		if _, ok := el[key].(float64); !ok {
			r.addf("element %d missing '%s'", i, key)
		}
	}
}

func checkBoundElements(r *Report, el map[string]any, byID map[string]map[string]any) {
	raw, present := el["boundElements"]
	if !present || raw == nil {
		return
	}
	refs, ok := raw.([]any)
	if !ok {
		r.addf("element %v boundElements must be array", el["id"])
		return
	}
	owner, _ := el["id"].(string)
	for _, rawRef := range refs {
		ref, ok := rawRef.(map[string]any)
		if !ok {
			r.addf("element %s has malformed boundElements entry", owner)
			continue
		}
		id, _ := ref["id"].(string)
		typ, _ := ref["type"].(string)
		target, found := byID[id]
		switch typ {
		case TypeText:
			if !found {
				r.addf("bound text %s not found", id)
				continue
			}
			if c, _ := target["containerId"].(string); c != owner {
				r.addf("bound text %s containerId mismatch", id)
			}
		case TypeArrow:
			if !found {
				r.addf("bound arrow %s not found", id)
				continue
			}
			if target["type"] != TypeArrow {
				r.addf("bound arrow %s is not an arrow", id)
			}
		default:
			if !found {
				r.addf("bound element %s not found", id)
			}
		}
	}
}

func checkContainer(r *Report, el map[string]any, byID map[string]map[string]any) {
	cid, _ := el["containerId"].(string)
	if cid == "" {
		return
	}
	id, _ := el["id"].(string)
	container, ok := byID[cid]
	if !ok {
		r.addf("text %s container %s not found", id, cid)
		return
	}
	refs, _ := container["boundElements"].([]any)
	for _, rawRef := range refs {
		if ref, ok := rawRef.(map[string]any); ok && ref["id"] == id {
			return
		}
	}
	r.addf("text %s not listed in boundElements of %s", id, cid)
}

func checkBinding(r *Report, el map[string]any, key string, byID map[string]map[string]any) {
	b, ok := el[key].(map[string]any)
	if !ok {
		return
	}
	id, _ := el["id"].(string)
	target, _ := b["elementId"].(string)
	if target == "" {
		r.addf("arrow %s %s missing elementId", id, key)
		return
	}
	shape, found := byID[target]
	if !found {
		r.addf("arrow %s %s target %s not found", id, key, target)
		return
	}
	if typ, _ := shape["type"].(string); !IsShape(typ) {
		r.addf("arrow %s %s target %s is not a shape", id, key, target)
	}
}
