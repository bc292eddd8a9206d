package errors

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPolicyTable(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
		action Action
	}{
		{http.StatusTooManyRequests, KindRateLimited, ActionWait},
		{http.StatusUnauthorized, KindUnauthorized, ActionAbort},
		{http.StatusForbidden, KindForbidden, ActionAbort},
		{http.StatusNotFound, KindNotFound, ActionAbort},
		{http.StatusBadRequest, KindBadRequest, ActionAbort},
		{http.StatusBadGateway, KindTransport, ActionRetry},
		{http.StatusServiceUnavailable, KindTransport, ActionRetry},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			err := FromStatus(tc.status, "request failed")
			require.Equal(t, tc.kind, KindOf(err))
			require.Equal(t, tc.action, ActionFor(err))
			require.Equal(t, tc.status, StatusCode(err))
		})
	}
}

func TestQuotaStops(t *testing.T) {
	err := &Error{Kind: KindQuotaExhausted, StatusCode: http.StatusTooManyRequests, Message: "usage cap"}
	require.Equal(t, ActionStop, ActionFor(err))
	require.ErrorIs(t, err, ErrQuotaExhausted)
	require.NotErrorIs(t, err, ErrRateLimited)
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	base := &Error{Kind: KindRateLimited, StatusCode: 429, RetryAfter: 3 * time.Second, Message: "slow down"}
	wrapped := fmt.Errorf("failed to fetch page: %w", base)

	require.Equal(t, KindRateLimited, KindOf(wrapped))
	require.Equal(t, 3*time.Second, RetryAfter(wrapped))
	require.Equal(t, KindRateLimited, KindOf(Wrap(wrapped, "timeline")))
	require.Equal(t, 3*time.Second, RetryAfter(Wrap(wrapped, "timeline")))
}

func TestUnclassifiedAborts(t *testing.T) {
	require.Equal(t, ActionAbort, ActionFor(fmt.Errorf("boom")))
	require.Equal(t, KindUnknown, KindOf(nil))
	require.Equal(t, 0, StatusCode(fmt.Errorf("boom")))
}

func TestSentinelMatching(t *testing.T) {
	require.True(t, IsUnauthorized(FromStatus(401, "x")))
	require.True(t, IsForbidden(FromStatus(403, "x")))
	require.True(t, IsNotFound(FromStatus(404, "x")))
	require.ErrorIs(t, Transport(fmt.Errorf("dial"), "x"), ErrServiceUnavailable)
	require.Equal(t, "x (status 403)", FromStatus(403, "x").Error())
}

func TestWrapKeepsClassification(t *testing.T) {
	require.NoError(t, Wrap(nil, "lookup"))

	err := Wrap(FromStatus(http.StatusUnauthorized, "lookup user returned an error"), "failed to look up user 42")

	require.Equal(t, KindUnauthorized, KindOf(err))
	require.Equal(t, http.StatusUnauthorized, StatusCode(err))
	require.True(t, IsUnauthorized(err))
	require.Equal(t, "failed to look up user 42: lookup user returned an error (status 401)", err.Error())
}
