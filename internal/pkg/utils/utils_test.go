package utils

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/constants"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	token, err := GenerateAuthToken(&AuthTokenWrapper{GameMaster: "ivan"}, "s3cret")
	if err != nil {
		t.Fatalf("GenerateAuthToken: %v", err)
	}

	wrapper, err := ParseAuthToken(token, "s3cret")
	if err != nil {
		t.Fatalf("ParseAuthToken: %v", err)
	}
	if wrapper.GameMaster != "ivan" {
		t.Errorf("GameMaster = %q", wrapper.GameMaster)
	}
}

func TestParseAuthTokenRejects(t *testing.T) {
	valid, err := GenerateAuthToken(&AuthTokenWrapper{GameMaster: "ivan"}, "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	expired, err := GenerateAuthToken(&AuthTokenWrapper{
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()},
		GameMaster:     "ivan",
	}, "s3cret")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other"},
		{"empty secret", valid, ""},
		{"expired", expired, "s3cret"},
		{"garbage", "not-a-token", "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAuthToken(tt.token, tt.secret)
			if !errors.Is(err, constants.ErrUnauthorized) {
				t.Errorf("err = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestParseResourceCounts(t *testing.T) {
	got, err := ParseResourceCounts(" wood=7, plank = 3 ")
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.ResourceCount{
		{Identificator: "wood", Count: 7},
		{Identificator: "plank", Count: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if got, err := ParseResourceCounts(""); err != nil || got != nil {
		t.Errorf("empty input = %+v, %v", got, err)
	}

	for _, bad := range []string{"wood", "=3", "wood=many"} {
		if _, err := ParseResourceCounts(bad); !errors.Is(err, constants.ErrInvalidArgument) {
			t.Errorf("ParseResourceCounts(%q) err = %v", bad, err)
		}
	}
}
