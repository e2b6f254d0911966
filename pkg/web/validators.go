package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParamValidator is a function type that validates a parameter.
type ParamValidator func(valueToTest int64) bool

func newComparisonValidator(valueInClosure int64, compareFn func(argValue, closedValue int64) bool) ParamValidator {
	return func(argValue int64) bool {
		return compareFn(argValue, valueInClosure)
	}
}

// gte returns a ParamValidator that checks if the argument is greater than or equal to the value captured in the closure.
func gte(valToCompareAgainst int64) ParamValidator {
	return newComparisonValidator(valToCompareAgainst, func(argValue, closedValue int64) bool {
		return argValue >= closedValue
	})
}

// ParsePathGte reads an integer path parameter and checks it is at least value.
func ParsePathGte(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, value int64) (int, bool) {
	return parseValidate(r.PathValue(key), w, logger, key, gte(value))
}

func parseValidate(value string, w http.ResponseWriter, logger *slog.Logger, key string, pValidator ParamValidator) (int, bool) {
	if value == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s parameter is required", key))
		return 0, false
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !pValidator(intValue) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return int(intValue), true
}
