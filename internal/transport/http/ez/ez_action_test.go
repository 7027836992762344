package ez

import (
	"errors"
	"fmt"
	"testing"

	"storespark/internal/domain"
	"storespark/internal/service"
	resp "storespark/internal/transport/http/response"
)

func codeOf(t *testing.T, err error) int {
	t.Helper()
	var ae *AErr
	if !errors.As(err, &ae) {
		t.Fatalf("not an AErr: %v", err)
	}
	return ae.Code
}

func TestMapErr(t *testing.T) {
	cases := []struct {
		in   error
		code int
	}{
		{&service.ValidationError{Field: "name", Msg: "Name is too short"}, resp.CodeBadRequest},
		{service.ErrInvalidCredentials, resp.CodeUnauthorized},
		{service.ErrWrongOldPassword, resp.CodeForbidden},
		{service.ErrNotFound, resp.CodeNotFound},
		{domain.ErrNotFound, resp.CodeNotFound},
		{domain.ErrDuplicateEmail, resp.CodeConflict},
		{errors.New("boom"), resp.CodeServerError},
	}
	for _, c := range cases {
		if got := codeOf(t, MapErr(c.in)); got != c.code {
			t.Fatalf("MapErr(%v) code = %d, want %d", c.in, got, c.code)
		}
	}
}

func TestMapErrWrapped(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", service.ErrInvalidCredentials)
	if got := codeOf(t, MapErr(wrapped)); got != resp.CodeUnauthorized {
		t.Fatalf("wrapped error code = %d", got)
	}
}

func TestMapErrKeepsAErr(t *testing.T) {
	orig := Conflict("already rated")
	if MapErr(orig) != orig {
		t.Fatalf("AErr must pass through untouched")
	}
}

func TestValidationMessageSurvivesMapping(t *testing.T) {
	err := MapErr(&service.ValidationError{Field: "rating", Msg: "Rating must be between 1 and 5."})
	var ae *AErr
	if !errors.As(err, &ae) {
		t.Fatalf("not an AErr")
	}
	if ae.Error() != "Rating must be between 1 and 5." {
		t.Fatalf("message lost: %q", ae.Error())
	}
}
