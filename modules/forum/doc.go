// Package forum is the typed feature surface over the forum backend:
// question, reply and search models matching the wire contract, a Service
// issuing the corresponding API calls through the authorized client, and
// a chi router composing the local UI shell with the session guard.
package forum
