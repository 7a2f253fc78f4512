// Package api contains the HTTP handlers. Handlers are deliberately thin:
// input passes the validation gate before a handler reads it, business
// decisions live in the service layer, and every failure is returned to the
// shared error boundary for translation and rendering.
package api
