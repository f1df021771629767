// Package auth provides authentication and authorization for the admin api.
//
// # Identity
//
// Callers authenticate with an RS256 signed bearer token issued at login.
// Tokens verifies the signature with the public key only and checks
// expiry, audience and issuer. RequireIdentity puts the caller id and
// kind (staff user or storefront customer) into fiber.Locals.
//
// # Authorization
//
// Every staff user holds one role. A role holds at most one grant per
// module and a grant lists the allowed actions. RequirePermission denies
// unless the caller's role grants the action on the module. The role is
// re-read on every request.
//
// Example usage:
//
//	tokens, err := auth.NewTokens(cfg.JWT)
//	authService := auth.NewService(db)
//
//	admin := app.Group("/api/v1/admin", auth.RequireIdentity(tokens))
//	admin.Get("/tagList",
//	    auth.RequirePermission(authService, auth.ActionRead, auth.ModuleTag),
//	    handler,
//	)
package auth
