// Package httpkit is what modules mount their handlers with
// modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "labqc/internal/platform/net/http"
)

type (
	// Router is the module facing router
	Router = phttp.Router

	// Handler is a mounted handler
	Handler = phttp.Handler

	// Response lets a handler choose its status
	Response = phttp.Response
)

// Created returns a 201 response, for example a newly recorded case
func Created(data any) Response { return phttp.Created(data) }

// List returns one page of items with its page block
func List(items any, total, page, size int) Response {
	return phttp.List(items, total, page, size)
}

// Get mounts a handler that reads only the path and query
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.NoBody(h))
}

// Delete mounts a body-less handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.NoBody(h))
}

// PostJSON mounts a handler whose body is bound and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PutJSON is PostJSON for PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.JSONHandler(h))
}

// MountAPIV1 mounts everything under /api/v1 behind mw
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
