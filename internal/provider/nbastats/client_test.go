package nbastats

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(slog.Default(), WithBaseURL(srv.URL), WithSpacing(time.Millisecond), WithTimeout(2*time.Second))
}

const leagueDashBody = `{
	"resource": "leaguedashplayerstats",
	"resultSets": [{
		"name": "LeagueDashPlayerStats",
		"headers": ["PLAYER_ID", "PLAYER_NAME", "TEAM_ABBREVIATION", "GP", "MIN", "PIE"],
		"rowSet": [
			[1630700, "Ace Guard", "SAS", 62, 1800.5, 0.095],
			[1630701, "Bench Wing", "BOS", 9, 120.0, null]
		]
	}]
}`

func TestPlayerTotals(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leaguedashplayerstats", r.URL.Path)
		assert.Equal(t, "Base", r.URL.Query().Get("MeasureType"))
		assert.Equal(t, "Totals", r.URL.Query().Get("PerMode"))
		assert.Equal(t, "Regular Season", r.URL.Query().Get("SeasonType"))
		w.Write([]byte(leagueDashBody))
	})

	lines, err := c.PlayerTotals(context.Background(), "2025-26")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 1630700, lines[0].PlayerID)
	assert.Equal(t, "Ace Guard", lines[0].PlayerName)
	assert.Equal(t, "SAS", lines[0].TeamAbbrev)
	assert.Equal(t, 62, lines[0].Games)
	assert.InDelta(t, 1800.5, lines[0].Minutes, 1e-9)
}

func TestAdvancedTotalsNullImpact(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Advanced", r.URL.Query().Get("MeasureType"))
		w.Write([]byte(leagueDashBody))
	})

	lines, err := c.AdvancedTotals(context.Background(), "2025-26")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.InDelta(t, 0.095, lines[0].ImpactRate, 1e-9)
	// null PIE decodes to zero rather than dropping the row
	assert.Equal(t, 0.0, lines[1].ImpactRate)
}

func TestDraftClass(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drafthistory", r.URL.Path)
		assert.Equal(t, "2025", r.URL.Query().Get("Season"))
		w.Write([]byte(`{
			"resource": "drafthistory",
			"resultSets": [{
				"name": "DraftHistory",
				"headers": ["PERSON_ID", "PLAYER_NAME", "SEASON", "ROUND_NUMBER", "ROUND_PICK", "OVERALL_PICK", "TEAM_NAME", "TEAM_ABBREVIATION"],
				"rowSet": [
					[1630700, "Ace Guard", "2025", 1, 1, 1, "Spurs", "SAS"],
					[1630702, "Late Pick", "2025", 2, 28, 58, "Celtics", "BOS"]
				]
			}]
		}`))
	})

	picks, err := c.DraftClass(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, 1, picks[0].Pick)
	assert.Equal(t, 58, picks[1].Pick)
	assert.Equal(t, 2025, picks[0].DraftYear)
}

func TestSchemaMismatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"resultSets": [{
				"name": "LeagueDashPlayerStats",
				"headers": ["PLAYER_ID", "PLAYER_NAME"],
				"rowSet": []
			}]
		}`))
	})

	_, err := c.PlayerTotals(context.Background(), "2025-26")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema mismatch")
}

func TestMissingResultSet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resultSets": []}`))
	})

	_, err := c.PlayerTotals(context.Background(), "2025-26")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing from response")
}

func TestNon200(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := c.PlayerTotals(context.Background(), "2025-26")
	assert.Error(t, err)
}
