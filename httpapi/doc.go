// Package httpapi mounts the newsdeck engine on an HTTP router.
//
// # Surface
//
//	PUT    /auth/register       open        create an account
//	POST   /auth/login          open        issue an access/refresh pair
//	POST   /auth/refresh        user gate   re-issue an access token
//	GET    /auth/allUser        admin gate  list accounts
//	PATCH  /auth/update/{id}    admin gate  replace an account
//	PUT    /api/{ownerId}       user gate   create a smart collection
//	PATCH  /api/{id}            user gate   replace a collection query
//	DELETE /api/{id}            user gate   delete a collection
//	GET    /api/{ownerId}       user gate   list an owner's collections
//	GET    /roles               open        list role names
//	GET    /metrics             open        Prometheus text exposition
//
// The seed routes (/auth/seed, /api/seed, /roles/seed) and the unscoped
// GET /api/ listing are development conveniences and only mounted when
// [Config.EnableDevRoutes] is set.
//
// Every non-payload response is the envelope {"status":"ok"|"error","msg":...}.
//
// # Architecture boundaries
//
// Handlers decode, delegate to the engine, and encode. Authorization lives in
// the middleware gates; validation and ownership checks live in the engine.
//
// # What this package must NOT do
//
//   - Touch the store directly.
//   - Read environment variables — cmd/ owns configuration.
package httpapi
