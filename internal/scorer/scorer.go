// Package scorer runs the external disease scorer over uploaded occurrence data.
package scorer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"health_guardian/internal/domain"
)

// ErrEmptyOutput is returned when the scorer prints nothing
var ErrEmptyOutput = errors.New("scorer produced no output")

// ParseOutput decodes scorer output. The scorer emits one list of predictions per input
// row; a single flat list is accepted as well. Shape is checked here, values by the caller.
func ParseOutput(data []byte) ([]domain.Prediction, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyOutput
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode scorer output: %w", err)
	}
	var out []domain.Prediction
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '[' {
			var row []domain.Prediction
			if err := json.Unmarshal(item, &row); err != nil {
				return nil, fmt.Errorf("decode scorer row %d: %w", i, err)
			}
			out = append(out, row...)
			continue
		}
		var p domain.Prediction
		if err := json.Unmarshal(item, &p); err != nil {
			return nil, fmt.Errorf("decode scorer entry %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}
