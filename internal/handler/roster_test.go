package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/riverton-pd/roster-manager/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestShouldQueueAlert(t *testing.T) {
	tests := []struct {
		name    string
		created bool
		status  domain.AlertStatus
		want    bool
	}{
		{"new alert", true, domain.AlertStatusOpen, true},
		{"existing alert never queued", false, domain.AlertStatusOpen, true},
		{"existing alert already queued", false, domain.AlertStatusQueued, false},
		{"existing alert already sent", false, domain.AlertStatusSent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert := &domain.StaffingAlert{Status: tt.status}
			require.Equal(t, tt.want, shouldQueueAlert(tt.created, alert))
		})
	}
}

func TestParseSlotQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/?dayOfWeek=3&shiftTypeID=7", nil)
	dayOfWeek, shiftTypeID, err := parseSlotQuery(r)
	require.NoError(t, err)
	require.Equal(t, int32(3), dayOfWeek)
	require.Equal(t, int64(7), shiftTypeID)

	r = httptest.NewRequest("GET", "/?dayOfWeek=9&shiftTypeID=7", nil)
	_, _, err = parseSlotQuery(r)
	require.Error(t, err)

	r = httptest.NewRequest("GET", "/?shiftTypeID=7", nil)
	_, _, err = parseSlotQuery(r)
	require.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	parsed, err := parseOptionalDate(nil)
	require.NoError(t, err)
	require.Nil(t, parsed)

	s := "2026-03-02"
	parsed, err = parseOptionalDate(&s)
	require.NoError(t, err)
	require.Equal(t, "2026-03-02", parsed.Format("2006-01-02"))

	bad := "03/02/2026"
	_, err = parseOptionalDate(&bad)
	require.Error(t, err)
}
