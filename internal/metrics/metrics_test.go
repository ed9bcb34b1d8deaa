package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSessionLifecycle(t *testing.T) {
	openedBefore := testutil.ToFloat64(sessionsOpened.WithLabelValues("command"))
	activeBefore := testutil.ToFloat64(sessionsActive)
	endedBefore := testutil.ToFloat64(sessionsEnded.WithLabelValues(EndTimeout))

	RecordSessionOpened("command")
	assert.Equal(t, openedBefore+1, testutil.ToFloat64(sessionsOpened.WithLabelValues("command")))
	assert.Equal(t, activeBefore+1, testutil.ToFloat64(sessionsActive))

	RecordSessionEnded(EndTimeout)
	assert.Equal(t, endedBefore+1, testutil.ToFloat64(sessionsEnded.WithLabelValues(EndTimeout)))
	assert.Equal(t, activeBefore, testutil.ToFloat64(sessionsActive))
}

func TestRecordMutation(t *testing.T) {
	okBefore := testutil.ToFloat64(mutations.WithLabelValues("add_role", "true"))
	failBefore := testutil.ToFloat64(mutations.WithLabelValues("add_role", "false"))

	RecordMutation("add_role", true)
	RecordMutation("add_role", false)
	RecordMutation("add_role", false)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(mutations.WithLabelValues("add_role", "true")))
	assert.Equal(t, failBefore+2, testutil.ToFloat64(mutations.WithLabelValues("add_role", "false")))
}

func TestHandler(t *testing.T) {
	RecordCandidateList("roles", 3)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "missioncontrol_menu_candidate_list_size")
}
