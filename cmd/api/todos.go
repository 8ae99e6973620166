// cmd/api/todos.go
// Handlers for the todos resource. They mirror the books handlers but take
// the id from the URL on update.
package main

import (
	"fmt"
	"net/http"

	"github.com/aoideee/shelf/internal/data"
)

// listTodosHandler handles GET /todos.
func (app *applicationDependencies) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := app.models.Todos.List(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"todos": todos}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showTodoHandler handles GET /todos/:id.
func (app *applicationDependencies) showTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	todo, err := app.models.Todos.Get(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"todo": todo}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createTodoHandler handles POST /todos.
// complete may be omitted and defaults to false.
func (app *applicationDependencies) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	var input data.TodoInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.readJSONErrorResponse(w, r, err)
		return
	}

	todo, err := app.models.Todos.Create(r.Context(), input)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/todos/%d", todo.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"todo": todo}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateTodoHandler handles PUT /todos/:id with a full replacement body.
func (app *applicationDependencies) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	var input data.TodoInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.readJSONErrorResponse(w, r, err)
		return
	}

	err = app.models.Todos.Update(r.Context(), id, input)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteTodoHandler handles DELETE /todos/:id.
func (app *applicationDependencies) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	err = app.models.Todos.Delete(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
