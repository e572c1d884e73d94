package compare

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // indent output
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}

	data, err := marshal(compSet)
	if err != nil {
		return "", fmt.Errorf("failed to encode comparison %s: %w", compSet.RunID, err)
	}
	return string(data), nil
}
