package repository

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql 1062", errors.New("Error 1062 (23000): Duplicate entry '1-3' for key 'uq_bookings_session_seat'"), true},
		{"wrapped 1062", fmt.Errorf("insert booking: %w", errors.New("Error 1062: Duplicate entry")), true},
		{"other mysql error", errors.New("Error 1452 (23000): Cannot add or update a child row"), false},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDuplicateKey(tc.err); got != tc.want {
				t.Fatalf("isDuplicateKey(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
