// Package demo is the explicit offline mode: an in-memory rendition of
// the forum backend behind the same REST contract, served through an
// in-process transport. It is selected only by configuration — the client
// never falls back to it silently when the real backend is unreachable —
// and every request it serves is logged as demo traffic.
//
//	backend := demo.NewBackend(demo.WithLogger(log))
//	client, _ := apiclient.New(cfg.APIBaseURL,
//		apiclient.WithHTTPTransport(demo.NewTransport(backend, "/api")))
//
// Login accepts any non-empty credentials and mints a sample identity;
// the dataset ships a handful of seeded questions so listing, search and
// voting have something to chew on.
package demo
