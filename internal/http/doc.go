// Package http provides HTTP handlers and middleware for the MindEase API.
//
// The router exposes the following endpoints:
//   - POST /auth/login: validates a seeded credential pair and issues a bearer
//     token. Body: {"email","password","role"}. Response: {"user","token"}.
//   - POST /auth/signup: fabricates a new account and issues a token. Nothing
//     is persisted; duplicate emails are accepted.
//   - POST /auth/refresh: issues a fresh token for the cached session.
//   - DELETE /auth/session: signs out, clearing the durable session cache.
//   - GET /counsellors, GET /counsellors/{id}: counsellor directory with
//     specialization, ageGroup, and maxPrice query filters.
//   - GET /sessions, POST /sessions: counselling session bookings for the
//     authenticated principal. GET /earnings summarizes a counsellor's
//     booking history (counsellor role only).
//   - GET /resources, GET /resources/{id}: wellness library with category,
//     type, and difficulty query filters.
//   - GET /journal, POST /journal, PUT /journal/{id}, DELETE /journal/{id}:
//     the caller's private journal.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
