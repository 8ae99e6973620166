// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and the stores.
package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/shelf/internal/data"
	"github.com/aoideee/shelf/internal/validator"
)

// createBookHandler handles POST /create-book.
// It reads a JSON body containing the new book's details, lets the store
// validate it and assign an id, and responds with the stored book and a
// 201 Created status.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.readJSONErrorResponse(w, r, err)
		return
	}

	book, err := app.models.Books.Create(r.Context(), input)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	// Point the client at the new record.
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/books/%d", book.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /books/:id.
// Responds 422 for an id below 1 and 404 if no book with that id exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	book, err := app.models.Books.Get(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookByTitleHandler handles GET /titles/:title.
// The title is matched without regard to case; the first match wins.
func (app *applicationDependencies) showBookByTitleHandler(w http.ResponseWriter, r *http.Request) {
	title := httprouter.ParamsFromContext(r.Context()).ByName("title")

	book, err := app.models.Books.FindByTitle(r.Context(), title)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /books.
// It returns every book in insertion order.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := app.models.Books.List(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// filterBooksHandler handles GET /books/.
// Supported query parameters (all optional, combined with AND):
//
//	rating or book_rating  integer in [1,5]
//	publish_date           integer year
//	author, category       case-insensitive match
//
// An empty result is a 200 with an empty list.
func (app *applicationDependencies) filterBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	v := validator.New()

	var filter data.BookFilter
	// Both spellings are validated; rating wins when both are sent.
	filter.Rating = app.readInt(qs, "rating", 0, 1, 5, v)
	if bookRating := app.readInt(qs, "book_rating", 0, 1, 5, v); filter.Rating == 0 {
		filter.Rating = bookRating
	}
	filter.PublishDate = app.readInt(qs, "publish_date", 0, 1, 9999, v)
	filter.Author = app.readString(qs, "author", "")
	filter.Category = app.readString(qs, "category", "")

	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	books, err := app.models.Books.Filter(r.Context(), filter.Matches)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /books/update_book.
// The body is a full book including its id; the stored book is replaced
// entirely. Responds 204 on success and 404 if the id is unknown.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.readJSONErrorResponse(w, r, err)
		return
	}

	if input.ID == nil {
		// Report the missing id together with any other field problems.
		v := validator.New()
		v.AddError("id", "must be provided")
		var validationErr *data.ValidationError
		if errors.As(app.models.Books.Validate(input), &validationErr) {
			for field, message := range validationErr.Errors {
				v.AddError(field, message)
			}
		}
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Books.Update(r.Context(), *input.ID, input)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteBookHandler handles DELETE /books/:id.
// Responds 204 on success and 404 if no book with that id exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	err = app.models.Books.Delete(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
