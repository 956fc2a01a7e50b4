package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
)

func TestConfigValidateAppliesDefaults(test *testing.T) {
	test.Parallel()
	cfg := Config{SessionSigningKey: "secret"}
	if err := cfg.Validate(); err != nil {
		test.Fatalf("validate: %v", err)
	}
	if cfg.ListenAddr != defaultListenAddr || cfg.SessionIssuer != defaultSessionIssuer || cfg.SessionCookieName != defaultSessionCookie {
		test.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		test.Fatalf("expected default timeout, got %s", cfg.RequestTimeout)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{defaultAllowedOrigin}) {
		test.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestConfigValidateRequiresSigningKey(test *testing.T) {
	test.Parallel()
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		test.Fatalf("expected missing signing key to fail")
	}
}

func TestParseList(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "  ", want: []string{}},
		{name: "single", raw: "http://localhost:3000", want: []string{"http://localhost:3000"}},
		{name: "trimmed", raw: " a , ,b ", want: []string{"a", "b"}},
	}
	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			if got := ParseList(testCase.raw); !reflect.DeepEqual(got, testCase.want) {
				test.Fatalf("ParseList(%q) = %v, want %v", testCase.raw, got, testCase.want)
			}
		})
	}
}

func TestStatusForError(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		err          error
		expectStatus int
		expectCode   string
	}{
		{err: frontdesk.ErrInvalidAmount, expectStatus: http.StatusBadRequest, expectCode: "VALIDATION_ERROR"},
		{err: frontdesk.ErrNotShiftOwner, expectStatus: http.StatusForbidden, expectCode: "FORBIDDEN"},
		{err: frontdesk.ErrUnknownBooking, expectStatus: http.StatusNotFound, expectCode: "NOT_FOUND"},
		{err: fmt.Errorf("wrapped: %w", frontdesk.ErrRoomUnavailable), expectStatus: http.StatusConflict, expectCode: "CONFLICT"},
		{err: frontdesk.ErrBookingNotActive, expectStatus: http.StatusConflict, expectCode: "INVALID_STATE"},
		{err: frontdesk.ErrIllegalRoomTransition, expectStatus: http.StatusConflict, expectCode: "INVALID_TRANSITION"},
		{err: frontdesk.ErrClosedDay, expectStatus: http.StatusLocked, expectCode: "DAY_LOCKED"},
		{err: errors.New("disk full"), expectStatus: http.StatusInternalServerError, expectCode: codeInternal},
	}
	for _, testCase := range testCases {
		status, code := statusForError(testCase.err)
		if status != testCase.expectStatus || code != testCase.expectCode {
			test.Fatalf("statusForError(%v) = %d %s, want %d %s", testCase.err, status, code, testCase.expectStatus, testCase.expectCode)
		}
	}
}

func TestActorResolverRole(test *testing.T) {
	test.Parallel()
	resolver := newActorResolver([]string{" director ", ""})
	testCases := []struct {
		name   string
		userID string
		roles  []string
		want   frontdesk.Role
	}{
		{name: "configured id", userID: "director", want: frontdesk.RoleSuperAdmin},
		{name: "role claim", userID: "owner", roles: []string{"user", "Super_Admin"}, want: frontdesk.RoleSuperAdmin},
		{name: "plain", userID: "clerk", roles: []string{"user"}, want: frontdesk.RoleAdmin},
	}
	for _, testCase := range testCases {
		if got := resolver.role(testCase.userID, testCase.roles); got != testCase.want {
			test.Fatalf("%s: expected %s, got %s", testCase.name, testCase.want, got)
		}
	}
}

func TestFirstNonEmpty(test *testing.T) {
	test.Parallel()
	if got := firstNonEmpty(" ", "", " mail@example.com ", "id"); got != "mail@example.com" {
		test.Fatalf("unexpected value %q", got)
	}
	if got := firstNonEmpty("", " "); got != "" {
		test.Fatalf("expected empty, got %q", got)
	}
}
