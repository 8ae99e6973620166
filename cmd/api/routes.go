// cmd/api/routes.go
package main

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the middleware chain. Background work started by the chain stops when
// ctx is done.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → requestID → logRequest → rateLimit → router
//
// Current endpoints:
//
//	GET    /books               – list all books
//	GET    /books/              – filter books by rating, publish_date, author, category
//	GET    /books/:id           – retrieve a single book by ID
//	GET    /titles/:title       – retrieve the first book with a matching title
//	POST   /create-book         – create a new book
//	PUT    /books/update_book   – replace an existing book (id in the body)
//	DELETE /books/:id           – delete a book by ID
//	GET    /todos               – list all todos
//	GET    /todos/:id           – retrieve a single todo
//	POST   /todos               – create a new todo
//	PUT    /todos/:id           – replace an existing todo
//	DELETE /todos/:id           – delete a todo
//	GET    /healthcheck         – service status and record counts
//	GET    /metrics             – Prometheus metrics
func (app *applicationDependencies) routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	handle := func(method, path string, handler http.HandlerFunc) {
		router.Handler(method, path, app.instrument(path, handler))
	}

	// Book routes
	handle(http.MethodGet, "/books", app.listBooksHandler)
	handle(http.MethodGet, "/books/", app.filterBooksHandler)
	handle(http.MethodGet, "/books/:id", app.showBookHandler)
	handle(http.MethodGet, "/titles/:title", app.showBookByTitleHandler)
	handle(http.MethodPost, "/create-book", app.createBookHandler)
	handle(http.MethodPut, "/books/update_book", app.updateBookHandler)
	handle(http.MethodDelete, "/books/:id", app.deleteBookHandler)

	// Todo routes
	handle(http.MethodGet, "/todos", app.listTodosHandler)
	handle(http.MethodGet, "/todos/:id", app.showTodoHandler)
	handle(http.MethodPost, "/todos", app.createTodoHandler)
	handle(http.MethodPut, "/todos/:id", app.updateTodoHandler)
	handle(http.MethodDelete, "/todos/:id", app.deleteTodoHandler)

	handle(http.MethodGet, "/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", app.metrics.handler())

	return app.recoverPanic(app.requestID(app.logRequest(app.rateLimit(ctx, router))))
}
