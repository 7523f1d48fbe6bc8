package models

import "fmt"

type ErrorSeller struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details []struct {
		TypeURL string `json:"typeUrl"`
		Value   string `json:"value"`
	} `json:"details"`
}

func (e *ErrorSeller) Error() string {
	return fmt.Sprintf("API Seller: code: %d; message: %s", e.Code, e.Message)
}
