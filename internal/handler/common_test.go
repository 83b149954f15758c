package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestGetUserID(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  uint64
		ok    bool
	}{
		{"uint64", uint64(42), 42, true},
		{"int", 7, 7, true},
		{"int64", int64(19), 19, true},
		{"float64 from json claims", float64(3), 3, true},
		{"numeric string", "25", 25, true},
		{"garbage string", "not-a-number", 0, false},
		{"missing", nil, 0, false},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			c := e.NewContext(req, httptest.NewRecorder())
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			got, err := getUserID(c)
			if tc.ok && (err != nil || got != tc.want) {
				t.Fatalf("got (%d, %v), want (%d, nil)", got, err, tc.want)
			}
			if !tc.ok && err == nil {
				t.Fatalf("got (%d, nil), want error", got)
			}
		})
	}
}
