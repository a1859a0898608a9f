package http

import (
	"strings"
	"testing"
)

func TestCreateResourceRequestValidation(t *testing.T) {
	valid := CreateResourceRequest{Code: "EX1", Name: "First", Description: "optional"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name string
		req  CreateResourceRequest
	}{
		{"missing code", CreateResourceRequest{Name: "First"}},
		{"code too short", CreateResourceRequest{Code: "X", Name: "First"}},
		{"code too long", CreateResourceRequest{Code: strings.Repeat("X", 51), Name: "First"}},
		{"missing name", CreateResourceRequest{Code: "EX1"}},
		{"name too short", CreateResourceRequest{Code: "EX1", Name: "N"}},
		{"name too long", CreateResourceRequest{Code: "EX1", Name: strings.Repeat("N", 101)}},
		{"description too long", CreateResourceRequest{Code: "EX1", Name: "First", Description: strings.Repeat("d", 501)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.req.Validate(); err == nil {
				t.Fatalf("expected validation failure for %+v", tc.req)
			}
		})
	}
}
