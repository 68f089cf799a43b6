// Package apiclient is the authorized HTTP client for the forum backend.
//
// Every request runs through an auth transport that asks the bound
// session owner for the bearer credential and attaches it when present.
// When any endpoint answers 401 the transport invalidates the session,
// notifies the optional navigation callback with the requested path, and
// the call returns ErrAuthorizationExpired. All other failures pass
// through as *APIError.
//
// Construction is a two-step dance because the client and the session
// manager reference each other:
//
//	client, _ := apiclient.New(cfg.APIBaseURL)
//	sessions := session.New(session.WithService(client.Auth()), session.WithStore(store))
//	client.Bind(sessions)
//
// After Bind the client holds no session state of its own; it is a pure
// request/response transform over the session owner's credential.
package apiclient
