package sqldoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Los documentos se guardan como JSON. time.Time no sobrevive a JSON como
// tipo propio, así que se envuelve en {"$ts": "..."}; los enteros se leen
// como int64 para que los contadores mantengan su tipo.

const timeKey = "$ts"

func encodeData(data map[string]any) ([]byte, error) {
	enc := make(map[string]any, len(data))
	for k, v := range data {
		enc[k] = encodeValue(v)
	}
	b, err := json.Marshal(enc)
	if err != nil {
		return nil, fmt.Errorf("sqldoc: encode: %w", err)
	}
	return b, nil
}

func encodeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return map[string]any{timeKey: t.UTC().Format(time.RFC3339Nano)}
	case *time.Time:
		if t == nil {
			return nil
		}
		return map[string]any{timeKey: t.UTC().Format(time.RFC3339Nano)}
	default:
		return v
	}
}

func decodeData(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("sqldoc: decode: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	for k, v := range m {
		m[k] = decodeValue(v)
	}
	return m, nil
}

func decodeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		if len(t) == 1 {
			if s, ok := t[timeKey].(string); ok {
				if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
					return ts
				}
			}
		}
		return t
	default:
		return v
	}
}
