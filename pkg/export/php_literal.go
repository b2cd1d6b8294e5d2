package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// phpLiteral renders value as a PHP array literal whose entries are indented
// depth tabs deep. The value is first encoded as JSON so struct tags and map
// key ordering match the JSON exporter.
func phpLiteral(value any, depth int) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("export: encode php literal: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var b strings.Builder
	if depth < 1 {
		depth = 1
	}
	if err := writePHPValue(dec, &b, depth); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writePHPValue(dec *json.Decoder, b *strings.Builder, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("export: decode php literal: %w", err)
	}

	switch v := tok.(type) {
	case json.Delim:
		return writePHPArray(dec, b, depth, v)
	case string:
		b.WriteString(phpString(v))
	case json.Number:
		b.WriteString(v.String())
	case bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case nil:
		b.WriteString("null")
	default:
		return fmt.Errorf("export: unexpected token %T", tok)
	}
	return nil
}

func writePHPArray(dec *json.Decoder, b *strings.Builder, depth int, open json.Delim) error {
	if !dec.More() {
		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("export: decode php literal: %w", err)
		}
		b.WriteString("array()")
		return nil
	}

	indent := strings.Repeat("\t", depth)
	b.WriteString("array(\n")
	for dec.More() {
		b.WriteString(indent)
		if open == '{' {
			keyTok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("export: decode php literal: %w", err)
			}
			key, _ := keyTok.(string)
			b.WriteString(phpString(key))
			b.WriteString(" => ")
		}
		if err := writePHPValue(dec, b, depth+1); err != nil {
			return err
		}
		b.WriteString(",\n")
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("export: decode php literal: %w", err)
	}
	b.WriteString(strings.Repeat("\t", depth-1))
	b.WriteString(")")
	return nil
}

func phpString(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)
	return "'" + escaped + "'"
}
