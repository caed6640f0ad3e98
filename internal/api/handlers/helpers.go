package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	"kantong/pkg/utils"
)

// UserID pulls the authenticated user id the JWT middleware stored on the
// context. JWT claims decode numbers as float64.
func UserID(r *http.Request) (int, bool) {
	idFloat, ok := r.Context().Value(utils.CtxUserID).(float64)
	if !ok {
		return 0, false
	}
	return int(idFloat), true
}

func IsSuperuser(r *http.Request) bool {
	su, ok := r.Context().Value(utils.CtxIsSuperuser).(bool)
	return ok && su
}

func CheckBlankFields(value interface{}) error {
	val := reflect.ValueOf(value)
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() == reflect.String && field.String() == "" {
			return errors.New("all fields are required")
		}
	}
	return nil
}

// ParseDateRange reads the start_date/end_date query parameters the
// analytics endpoints require.
func ParseDateRange(r *http.Request) (start, end string, err error) {
	start = r.URL.Query().Get("start_date")
	end = r.URL.Query().Get("end_date")
	if _, err := time.Parse("2006-01-02", start); err != nil {
		return "", "", errors.New("start_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		return "", "", errors.New("end_date must be YYYY-MM-DD")
	}
	return start, end, nil
}
