package serverutils

// Envelope is the standard API response shape.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) Envelope[T] {
	return Envelope[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}
