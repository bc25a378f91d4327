// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import "strings"

// repairJSON attempts to fix common JSON formatting issues from LLM responses.
// It specifically handles missing opening quotes before keys in JSON objects,
// e.g. `, matches":` becomes `, "matches":`.
func repairJSON(s string) string {
	runes := []rune(s)
	var fixed strings.Builder
	fixed.Grow(len(s) + 16)

	i := 0
	for i < len(runes) {
		ch := runes[i]
		fixed.WriteRune(ch)
		i++

		// Keys can only start after { or ,
		if ch != '{' && ch != ',' {
			continue
		}

		// Skip whitespace
		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t') {
			fixed.WriteRune(runes[i])
			i++
		}

		if i >= len(runes) || runes[i] == '"' || !isLetter(runes[i]) {
			continue
		}

		// Possible unquoted key: scan to its end
		keyStart := i
		for i < len(runes) && (isLetter(runes[i]) || runes[i] == '_' || runes[i] == ' ') {
			i++
		}

		if i+1 < len(runes) && runes[i] == '"' && runes[i+1] == ':' {
			// Missing opening quote; the closing quote is already in place.
			fixed.WriteRune('"')
			fixed.WriteString(strings.TrimSpace(string(runes[keyStart:i])))
		} else {
			// Not a key after all, keep what was skipped.
			fixed.WriteString(string(runes[keyStart:i]))
		}
	}

	return fixed.String()
}
