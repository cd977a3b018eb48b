package httpresp

const (
	ErrNoFileUploaded  = "No file uploaded"
	ErrFileTooLarge    = "File too large"
	ErrFileNotFound    = "File not found"
	ErrInvalidFilePath = "Invalid file path"
	ErrUnsupportedType = "Only images and videos are allowed"
)

// ErrorResponse is the stable error envelope every failure maps to.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func NewErrorResponse(err string) ErrorResponse {
	return ErrorResponse{Error: err}
}

func NewErrorResponseWithMessage(err, message string) ErrorResponse {
	return ErrorResponse{Error: err, Message: message}
}

func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}
