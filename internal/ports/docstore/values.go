package docstore

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Los drivers no devuelven los mismos tipos (firestore: int64/time.Time,
// JSON: float64/json.Number/string). Estos helpers normalizan la lectura.

func String(data map[string]any, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func Int64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float32:
		return int64(t), float64(t) == math.Trunc(float64(t))
	case float64:
		return int64(t), t == math.Trunc(t)
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func Time(data map[string]any, key string) time.Time {
	switch t := data[key].(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Clone copia el mapa (un nivel; los valores son escalares en este dominio).
func Clone(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

// Matches aplica el filtro de igualdad de q sobre data.
func Matches(data map[string]any, q Query) bool {
	if strings.TrimSpace(q.Field) == "" {
		return true
	}
	v, ok := data[q.Field]
	if !ok {
		return false
	}
	return Compare(v, q.Value) == 0
}

// Apply filtra, ordena y limita en memoria. Lo usan los drivers sin índices propios.
func Apply(docs []Document, q Query) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if Matches(d.Data, q) {
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		var c int
		if q.OrderBy == "" {
			c = strings.Compare(out[i].ID, out[j].ID)
		} else {
			c = Compare(out[i].Data[q.OrderBy], out[j].Data[q.OrderBy])
			if c == 0 {
				c = strings.Compare(out[i].ID, out[j].ID)
			}
		}
		if q.Direction == Desc {
			return c > 0
		}
		return c < 0
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// Compare ordena nil < números < strings < tiempos; dentro de cada tipo, orden natural.
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case 1:
		fa, fb := toFloat(a), toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case 2:
		return strings.Compare(a.(string), b.(string))
	case 3:
		ta, tb := a.(time.Time), b.(time.Time)
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		}
		return 0
	case 4:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	}
	return 0
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case int, int32, int64, float32, float64, json.Number:
		return 1
	case string:
		return 2
	case time.Time:
		return 3
	case bool:
		return 4
	default:
		return 5
	}
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case float64:
		return t
	case json.Number:
		f, _ := t.Float64()
		return f
	}
	return 0
}
