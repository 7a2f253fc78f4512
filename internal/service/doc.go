// Package service contains the business logic that orchestrates stores,
// hashing, and token issuance behind the HTTP handlers.
package service
