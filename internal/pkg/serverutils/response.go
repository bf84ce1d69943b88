package serverutils

// Response is the JSON envelope every endpoint returns.
type Response[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response[ErrorBody] {
	return Response[ErrorBody]{
		Status:  "error",
		Message: message,
		Data: ErrorBody{
			Code:    code,
			Message: message,
		},
	}
}
