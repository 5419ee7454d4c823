// Package pieces is the client for the pieces REST API.
//
// Two layers live here:
//
//   - client.go: Request, a generic single-attempt JSON exchange that returns
//     a *RequestError classified by FailureKind.
//   - api.go: API, the seven catalog operations. Each returns a Result whose
//     Value is nil when the call failed. Failures are logged through slog and
//     never surface as errors.
//
// Endpoints:
//
//	GET    /api/pieces/all                    {pieces: [...]}
//	GET    /api/pieces/one/{id}               {piece: {...}}
//	GET    /api/pieces/alive/{true|false}     {pieces: [...]}
//	GET    /api/pieces/between/{start}/{end}  {pieces: [...]}
//	POST   /api/pieces/add                    body {piece}, returns {piece}
//	PUT    /api/pieces/update                 body {piece}, returns {piece}
//	DELETE /api/pieces/delete/{id}            {success: bool}
//
// A 404 is reported as FailureNotFound so callers can tell a missing piece
// from a broken backend. Package piecestest serves the same surface from
// memory for tests and local runs.
package pieces
