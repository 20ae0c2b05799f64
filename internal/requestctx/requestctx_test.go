package requestctx

import (
	"context"
	"testing"

	"perftrack/internal/domain/auth"
)

func TestRequestID(t *testing.T) {
	if GetRequestID(context.Background()) != "" {
		t.Fatal("expected empty request id")
	}
	ctx := WithRequestID(context.Background(), "abc")
	if GetRequestID(ctx) != "abc" {
		t.Fatalf("unexpected request id %q", GetRequestID(ctx))
	}
}

func TestSession(t *testing.T) {
	if _, ok := GetSession(context.Background()); ok {
		t.Fatal("did not expect a session")
	}
	want := auth.Session{UserID: 3, Username: "lead", Role: auth.RoleTeamLead}
	got, ok := GetSession(WithSession(context.Background(), want))
	if !ok || got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
