package document

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/xerrors"
)

func normalize(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, elem := range v {
			res, err := normalize(elem)
			if err != nil {
				return nil, err
			}

			v[key] = res
		}

		return v, nil
	case map[interface{}]interface{}:
		// YAML and msgpack mappings can have keys of any type, and two of them
		// can have the same text.
		out := make(map[string]interface{}, len(v))
		for key, elem := range v {
			name := fmt.Sprint(key)

			_, found := out[name]
			if found {
				return nil, xerrors.Errorf("duplicate key '%s' after normalization", name)
			}

			res, err := normalize(elem)
			if err != nil {
				return nil, err
			}

			out[name] = res
		}

		return out, nil
	case []interface{}:
		for i, elem := range v {
			res, err := normalize(elem)
			if err != nil {
				return nil, err
			}

			v[i] = res
		}

		return v, nil
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			res, err := normalize(elem)
			if err != nil {
				return nil, err
			}

			out[i] = res
		}

		return out, nil
	case json.Number:
		return number(v), nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case float32:
		return float64(v), nil
	default:
		return value, nil
	}
}

// number returns the integer value of the number if it has one, otherwise
// the float value.
func number(n json.Number) interface{} {
	i, err := n.Int64()
	if err == nil {
		return i
	}

	u, err := strconv.ParseUint(n.String(), 10, 64)
	if err == nil {
		return u
	}

	f, err := n.Float64()
	if err == nil {
		return f
	}

	return n.String()
}
