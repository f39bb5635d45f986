package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel kinds for API errors.
var (
	ErrProcessing      = errors.New("processing failed")
	ErrBadRequest      = errors.New("bad request")
	ErrPayloadTooLarge = errors.New("payload too large")
)

// WrapKind annotates err with the operation and error kind. The result
// matches both kind and err under errors.Is.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// statusFor maps an error to its response status. Everything except an
// oversized body is reported as a processing failure.
func statusFor(err error) int {
	if errors.Is(err, ErrPayloadTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// classifyBodyError marks body read failures caused by http.MaxBytesReader.
func classifyBodyError(op string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
		return WrapKind(op, ErrPayloadTooLarge, err)
	}
	return WrapKind(op, ErrBadRequest, err)
}
