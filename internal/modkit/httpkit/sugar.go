package httpkit

import "net/http"

// Get registers a no-body handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON mounts a decoding JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...JSONOptions) {
	r.Post(path, JSON(h, opts...))
}

// PostRaw mounts a POST handler that reads the body itself
func PostRaw(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}
