package models

import (
	"fmt"
	"strings"
)

type ErrorMarketItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorMarket struct {
	Status string            `json:"status"`
	Errors []ErrorMarketItem `json:"errors"`
}

func (e *ErrorMarket) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", item.Code, item.Message))
	}
	return fmt.Sprintf("API Market: status: %s; errors: %s", e.Status, strings.Join(messages, "; "))
}
