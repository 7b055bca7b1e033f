package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP handler that mounts its own routes.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
