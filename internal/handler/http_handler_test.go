package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	stdErr "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"go.uber.org/zap"

	"staking_resolver/internal/domain"
	apierr "staking_resolver/internal/errors"
	"staking_resolver/internal/handler"
	"staking_resolver/pkg/ss58"
)

const stash = "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5"

type mockRewards struct {
	err error
}

func (m *mockRewards) Resolve(ctx context.Context, account domain.AccountAddress, event domain.EventHandle) (domain.RewardDestination, error) {
	return domain.RewardDestination{Kind: domain.PayeeController}, m.err
}

type mockControllers struct {
	err error
}

func (m *mockControllers) Resolve(ctx context.Context, account domain.AccountAddress, event domain.EventHandle) (domain.AccountAddress, error) {
	return account, m.err
}

func body(t *testing.T, account string, index int) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"account":    account,
		"eventIndex": index,
		"block": domain.Block{
			Number: 100,
			Events: []domain.Event{
				{Section: "staking", Method: "Rewarded", Data: []string{stash, "1000"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(raw)
}

func router(rewards *mockRewards, controllers *mockControllers) *chi.Mux {
	r := chi.NewRouter()
	handler.NewHandler(rewards, controllers).Register(r)
	return r
}

func TestHTTPHandler(t *testing.T) {
	zap.ReplaceGlobals(zap.NewNop())
	r := router(&mockRewards{}, &mockControllers{})

	rec1 := httptest.NewRecorder()
	r.ServeHTTP(rec1, httptest.NewRequest("POST", "/resolve/reward-destination", body(t, stash, 0)))
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec1.Code)
	}
	var dest struct {
		EventID           string                   `json:"eventId"`
		RewardDestination domain.RewardDestination `json:"rewardDestination"`
	}
	if err := json.NewDecoder(rec1.Body).Decode(&dest); err != nil {
		t.Fatalf("decoding err: %v", err)
	}
	if dest.EventID != "100-0" || !dest.RewardDestination.IsController() {
		t.Errorf("unexpected response: %+v", dest)
	}

	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, httptest.NewRequest("POST", "/resolve/controller", body(t, stash, 0)))
	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec2.Code)
	}
	var ctrl struct {
		Controller string `json:"controller"`
	}
	if err := json.NewDecoder(rec2.Body).Decode(&ctrl); err != nil {
		t.Fatalf("decoding err: %v", err)
	}
	if ctrl.Controller != stash {
		t.Errorf("unexpected controller: %s", ctrl.Controller)
	}
}

func TestResolve_RequestErrors(t *testing.T) {
	zap.ReplaceGlobals(zap.NewNop())
	r := router(&mockRewards{}, &mockControllers{})

	cases := []struct {
		name       string
		body       *bytes.Reader
		wantStatus int
		wantErr    string
	}{
		{"bad json", bytes.NewReader([]byte("{")), http.StatusBadRequest, "invalid body"},
		{"bad account", body(t, "nope", 0), http.StatusBadRequest, "invalid account address"},
		{"index out of range", body(t, stash, 3), http.StatusBadRequest, "invalid event handle"},
		{"no block", bytes.NewReader([]byte(fmt.Sprintf(`{"account":%q}`, stash))), http.StatusBadRequest, "invalid event handle"},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("POST", "/resolve/reward-destination", c.body))

		if rec.Code != c.wantStatus {
			t.Errorf("%s: expected %d, got %d", c.name, c.wantStatus, rec.Code)
		}
		var got map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decoding err: %v", err)
		}
		if got["error"] != c.wantErr {
			t.Errorf("%s: expected message %q, got %q", c.name, c.wantErr, got["error"])
		}
	}
}

func TestResolve_ResolverErrors(t *testing.T) {
	zap.ReplaceGlobals(zap.NewNop())

	cases := []struct {
		err        error
		wantStatus int
		wantErr    string
	}{
		{fmt.Errorf("%w: Staking.Payee: %w", apierr.ErrRemoteQuery, stdErr.New("dial")), http.StatusBadGateway, "remote state query failed"},
		{apierr.ErrRequestTimeout, http.StatusGatewayTimeout, "request timed out"},
		{fmt.Errorf("%w: staking.Rewarded in block 100", apierr.ErrDataShapeMismatch), http.StatusUnprocessableEntity, "event data is not an account"},
		{stdErr.New("boom"), http.StatusInternalServerError, "internal error"},
	}

	for _, c := range cases {
		r := router(&mockRewards{}, &mockControllers{err: c.err})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("POST", "/resolve/controller", body(t, stash, 0)))

		if rec.Code != c.wantStatus {
			t.Errorf("%v: expected %d, got %d", c.err, c.wantStatus, rec.Code)
		}
		var got map[string]string
		json.NewDecoder(rec.Body).Decode(&got)
		if got["error"] != c.wantErr {
			t.Errorf("%v: expected message %q, got %q", c.err, c.wantErr, got["error"])
		}
	}
}

func TestStashFixtureIsValid(t *testing.T) {
	if !ss58.Valid(stash) {
		t.Fatal("fixture address must be valid ss58")
	}
}
