package i18n

// Params is the parameter bag for one resolve call. Values are plain scalars
// or a Thunk for parameters that should only be computed when the template
// actually references them.
type Params map[string]interface{}

// Thunk is a zero-argument parameter computed on first read. Each resolve
// call memoizes the result, so a thunk runs at most once per call even when
// the template references it several times.
type Thunk func() interface{}

// Lazy wraps fn as a Thunk.
func Lazy(fn func() interface{}) Thunk { return Thunk(fn) }

// paramReader reads params for a single formatting call, forcing thunks on
// first access and caching the result for the rest of the call.
type paramReader struct {
	params Params
	memo   map[string]interface{}
}

func newParamReader(p Params) *paramReader {
	return &paramReader{params: p}
}

func (pr *paramReader) get(name string) (interface{}, bool) {
	if pr.params == nil {
		return nil, false
	}
	if v, ok := pr.memo[name]; ok {
		return v, true
	}
	v, ok := pr.params[name]
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case Thunk:
		v = t()
	case func() interface{}:
		v = t()
	default:
		return v, true
	}
	if pr.memo == nil {
		pr.memo = make(map[string]interface{})
	}
	pr.memo[name] = v
	return v, true
}
