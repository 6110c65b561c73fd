package exceptions

import (
	"fmt"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"-"`
	Locations     []Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	loc := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, loc.File, loc.Line, loc.FunctionName)
}

// BuildNewCustomError wraps err with an HTTP status, a message safe to show
// the client and a developer message, recording the caller location.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)

	if err != nil {
		var customErr *CustomError
		// Keep the original location chain when re-wrapping an already
		// wrapped error so logs point at the first failure site.
		if ok := asCustomError(err, &customErr); ok {
			return &CustomError{
				StatusCode:    statusCode,
				ClientMessage: clientMessage,
				DevMessage:    customErr.DevMessage,
				Locations:     append(customErr.Locations, location),
			}
		}
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}

	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{location},
	}
}

func asCustomError(err error, target **CustomError) bool {
	customErr, ok := err.(*CustomError)
	if !ok {
		return false
	}
	*target = customErr
	return true
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{File: "unknown", FunctionName: "unknown"}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
