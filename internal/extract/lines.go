package extract

import "bytes"

// line is one non-blank input line with its 1-based position in the file.
type line struct {
	number int
	data   []byte
}

func nonBlankLines(content []byte) []line {
	var lines []line
	for i, raw := range bytes.Split(content, []byte("\n")) {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 {
			continue
		}
		lines = append(lines, line{number: i + 1, data: trimmed})
	}
	return lines
}
