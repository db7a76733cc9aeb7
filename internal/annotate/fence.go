// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/scout-engine/pkg/types"
)

// StripFence removes a single leading/trailing markdown code fence
// (``` or ```json) from a model response. Unfenced input is returned
// trimmed.
func StripFence(s string) string {
	t := strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(t, "```json"):
		t = strings.TrimPrefix(t, "```json")
	case strings.HasPrefix(t, "```"):
		t = strings.TrimPrefix(t, "```")
	default:
		return t
	}

	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return strings.TrimSpace(t)
}

// ParseSkillTable decodes a model response into a SkillTable after
// stripping any code fence. A decode failure is a per-page condition:
// the caller warns and skips the page, keeping the rest of the batch.
func ParseSkillTable(raw string) (types.SkillTable, error) {
	var table types.SkillTable
	if err := json.Unmarshal([]byte(StripFence(raw)), &table); err != nil {
		return types.SkillTable{}, fmt.Errorf("parsing skill table JSON: %w", err)
	}
	return table, nil
}
