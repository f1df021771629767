package handler

const (
	// APIPath is the prefix of every api route.
	APIPath = "/api/v1"

	// AdminPath is the route group of the admin panel api.
	AdminPath = APIPath + "/admin"

	// ErrNilACDFatalLogMsg is used if router, env or db pointer is nil.
	ErrNilACDFatalLogMsg = "router, env or db is nil"
)
