package relay

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"payment-relay/core/utils"
)

// reserved keys cannot be supplied through data.
var reserved = map[string]struct{}{
	"security_key": {},
}

// FormParams builds the gateway form for an operation. Scalars are sent
// as strings, arrays of scalars are comma joined and null values are
// omitted. Nested objects are rejected.
func FormParams(op Operation, data map[string]interface{}) (url.Values, error) {
	form := url.Values{}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, ok := reserved[k]; ok {
			return nil, fmt.Errorf("%w: data.%s is reserved", ErrInvalidEnvelope, k)
		}
		if k == op.Param {
			return nil, fmt.Errorf("%w: data.%s is set by requestAction", ErrInvalidEnvelope, k)
		}
		v, ok, err := formValue(data[k])
		if err != nil {
			return nil, fmt.Errorf("%w: data.%s %v", ErrInvalidEnvelope, k, err)
		}
		if ok {
			form.Set(k, v)
		}
	}

	for k, v := range op.Fixed {
		form.Set(k, v)
	}
	form.Set(op.Param, op.Value)
	return form, nil
}

func formValue(v interface{}) (string, bool, error) {
	switch x := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return x, true, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true, nil
	case bool:
		return strconv.FormatBool(x), true, nil
	case []interface{}:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			s, ok, err := formValue(e)
			if err != nil {
				return "", false, err
			}
			if _, nested := e.([]interface{}); nested {
				return "", false, fmt.Errorf("must not contain nested arrays")
			}
			if ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true, nil
	case map[string]interface{}:
		return "", false, fmt.Errorf("must be a scalar or an array of scalars")
	default:
		return utils.ToString(x), true, nil
	}
}
