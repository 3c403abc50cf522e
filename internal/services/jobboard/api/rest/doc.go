// Package rest exposes the job board service over JSON HTTP.
//
// Successful responses wrap their payload in {"data": ...}; list responses
// add a "pagination" object. Failures use the httpx error envelope with a
// status derived from the error kind. Callers authenticate with a bearer
// token or the session cookie set by login.
package rest
