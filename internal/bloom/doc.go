// Package bloom provides an HTTP client for the Bloom diary API.
//
// # Overview
//
// The client covers the two feeds shown on the diary screen: the daily
// question with the user's answer, and the per-day "done list". Every call is
// scoped by an ISO date (YYYY-MM-DD) derived from the local timezone; use
// LocalDate rather than formatting a UTC time.
//
// # API Endpoints
//
//   - GET    /api/daily-question/answer?date=D  question and answer for D
//   - GET    /api/daily-question                 register today's question
//   - POST   /api/daily-question/answer          save the answer (JSON body)
//   - GET    /api/done-list/D                     list entries for D
//   - POST   /api/done-list                       create (multipart "data" JSON)
//   - PUT    /api/done-list/ID                    update (multipart "data" JSON)
//   - DELETE /api/done-list/ID                    delete
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Carry the session's bearer token through oauth2.Transport
//   - Set Accept: application/json and User-Agent: bloom/0.1
//   - Carry a fresh X-Request-ID so server logs can be correlated with ours
//   - Are logged at debug level with status and duration
//
// # Error Handling
//
// Network failures are wrapped ("execute request: ..."), non-2xx responses
// return *StatusError ("api /api/done-list returned status 500") and
// malformed bodies return "decode response: ...". The client never retries;
// the diary package decides what a failure means for the user.
//
// # Testing
//
// Package bloomtest runs an in-memory implementation of every endpoint on an
// httptest.Server, with per-operation failure injection.
package bloom
