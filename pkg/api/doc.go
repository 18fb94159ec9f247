// Package api defines the wire types shared by every pathlight route:
// the uniform {data, error} response envelope, the error model with
// upstream status translation, and the request/response payloads for
// chat, GitHub, resume, market, and profile operations.
package api
