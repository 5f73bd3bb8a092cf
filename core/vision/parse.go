package vision

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Detection is one product entry returned by the classifier.
// Quantity and Expiration stay floating point here; the reconciliation
// engine decides whether they are acceptable whole numbers.
type Detection struct {
	// Product is the recognized product label.
	Product string `json:"product"`
	// Quantity is the number of visible units.
	Quantity float64 `json:"quantity"`
	// Expiration is the model-estimated shelf life in days, when the
	// prompt variant asks for it. Nil means the server estimates instead.
	Expiration *float64 `json:"expiration,omitempty"`
}

// ParseDetections decodes the model output into detections.
// Models occasionally wrap the array in markdown code fences; those are
// stripped first. An output that is not a JSON array is an upstream error.
// Elements that fail to decode individually become zero-value detections,
// which the reconciliation engine skips as invalid.
func ParseDetections(raw []byte) ([]Detection, error) {
	trimmed := stripCodeFences(bytes.TrimSpace(raw))

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("vision output is not a JSON array: %w", err)
	}

	detections := make([]Detection, 0, len(elems))
	for _, elem := range elems {
		var d Detection
		if err := json.Unmarshal(elem, &d); err != nil {
			detections = append(detections, Detection{})
			continue
		}
		detections = append(detections, d)
	}
	return detections, nil
}

// stripCodeFences removes a surrounding ```...``` block, including an
// optional language tag on the opening fence.
func stripCodeFences(raw []byte) []byte {
	if !bytes.HasPrefix(raw, []byte("```")) {
		return raw
	}
	raw = bytes.TrimPrefix(raw, []byte("```"))
	if idx := bytes.IndexByte(raw, '\n'); idx >= 0 {
		// Drop the language tag line (e.g. "json")
		if firstLine := bytes.TrimSpace(raw[:idx]); len(firstLine) > 0 && !bytes.HasPrefix(firstLine, []byte("[")) {
			raw = raw[idx+1:]
		}
	}
	raw = bytes.TrimSuffix(bytes.TrimSpace(raw), []byte("```"))
	return bytes.TrimSpace(raw)
}
