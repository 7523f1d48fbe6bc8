package sync

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var notDigits = regexp.MustCompile("[^0-9]")

// Divide режет список lst на части по n элементов, последняя часть может быть короче
func Divide[T any](lst []T, n int) ([][]T, error) {
	if n <= 0 {
		return nil, errors.New(fmt.Sprintf("размер части должен быть больше нуля, получено: %d", n))
	}
	var parts [][]T
	for i := 0; i < len(lst); i += n {
		end := i + n
		if end > len(lst) {
			end = len(lst)
		}
		parts = append(parts, lst[i:end])
	}
	return parts, nil
}

// PriceConversion преобразует цену. Пример: 5'990.00 руб. -> 5990
// Дробная часть отбрасывается, не округляется
func PriceConversion(price string) string {
	return notDigits.ReplaceAllString(strings.SplitN(price, ".", 2)[0], "")
}

// StockCount считает количество по правилам поставщика:
// ">10" значит много, ставим 100; "1" значит последний экземпляр, не продаем
func StockCount(quantity string) (int, error) {
	switch quantity {
	case ">10":
		return 100, nil
	case "1":
		return 0, nil
	default:
		count, err := strconv.Atoi(quantity)
		if err != nil {
			return 0, errors.Wrapf(err, "некорректное количество в остатках: %q", quantity)
		}
		return count, nil
	}
}

func containsOfferID(offerIDs []string, offerID string) bool {
	for _, id := range offerIDs {
		if id == offerID {
			return true
		}
	}
	return false
}

func removeOfferID(offerIDs []string, offerID string) []string {
	for i, id := range offerIDs {
		if id == offerID {
			return append(offerIDs[:i], offerIDs[i+1:]...)
		}
	}
	return offerIDs
}

func offerIDSet(offerIDs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(offerIDs))
	for _, id := range offerIDs {
		set[id] = struct{}{}
	}
	return set
}
