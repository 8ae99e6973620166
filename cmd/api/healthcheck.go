package main

import "net/http"

// healthcheckHandler handles GET /healthcheck. It reports the environment,
// version and how many records each collection holds; a backend that cannot
// be counted turns the response into a 500.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	books, err := app.models.Books.Len(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	todos, err := app.models.Todos.Len(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	env := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.environment,
			"version":     appVersion,
		},
		"records": map[string]int{
			"books": books,
			"todos": todos,
		},
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
