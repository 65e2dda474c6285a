package transport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/greengarden/greenery/constant"
	"github.com/greengarden/greenery/utils/errors"
)

type apiResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	code := constant.ErrorTypeCode[constant.ErrInternal]
	message := constant.ErrorTypeMessage[constant.ErrInternal]
	status := constant.ErrorTypeHTTPCode[constant.ErrInternal]

	var ce errors.CustomError
	if stderrors.As(err, &ce) {
		code = ce.ErrorCode()
		message = ce.Error()
		status = ce.ErrorHTTPCode()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Code:    code,
		Message: message,
	})
}
