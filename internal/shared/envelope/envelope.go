// Package envelope holds the uniform response body returned by mutating routes.
package envelope

type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail carries a fixed, caller-safe message. The underlying error is logged by the caller.
func Fail(msg string) Result {
	return Result{Success: false, Error: msg}
}
