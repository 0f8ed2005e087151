package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"claimcipher/internal/infra"
	"claimcipher/internal/modules/firm"
	"claimcipher/internal/modules/mileage"
	"claimcipher/internal/modules/route"
	"claimcipher/migrations"
)

// TestExportImportAgainstPostgresAndRedis drives the export handoff through the
// real stores. It needs CLAIMCIPHER_TEST_DSN and CLAIMCIPHER_TEST_REDIS.
func TestExportImportAgainstPostgresAndRedis(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("CLAIMCIPHER_TEST_DSN"))
	redisAddr := strings.TrimSpace(os.Getenv("CLAIMCIPHER_TEST_REDIS"))
	if dsn == "" || redisAddr == "" {
		t.Skip("CLAIMCIPHER_TEST_DSN and CLAIMCIPHER_TEST_REDIS required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := infra.NewDB(ctx, dsn)
	require.NoError(t, err, "connect %s", redactedDSN(dsn))
	t.Cleanup(db.Close)
	require.NoError(t, migrations.Apply(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE billing_policies, mileage_trips")
	require.NoError(t, err)

	rdb, err := infra.NewRedis(ctx, redisAddr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	firmSvc := firm.NewService(firm.NewStore(db), nil)
	n, err := firmSvc.SeedDefaults(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	routeSvc := route.NewService(nil, route.NewStore(rdb), route.Options{
		Defaults: route.Settings{MaxLegMiles: 50, SplitEnabled: true},
	}, nil)
	mileageSvc := mileage.NewService(firmSvc, mileage.NewStore(db), routeSvc, nil)

	srv := httptest.NewServer(NewServer(ServerDeps{Firm: firmSvc, Mileage: mileageSvc, Route: routeSvc}).Routes())
	t.Cleanup(srv.Close)
	client := &http.Client{Timeout: 10 * time.Second}

	status, body := postJSON(t, client, srv.URL+"/api/routes/export", map[string]any{"legs": scenarioLegs})
	require.Equal(t, http.StatusCreated, status, string(body))
	var exp route.Export
	require.NoError(t, json.Unmarshal(body, &exp))

	status, body = postJSON(t, client, srv.URL+"/api/mileage/import",
		map[string]any{"export_id": exp.ID, "firm_id": "acd", "save": true})
	require.Equal(t, http.StatusOK, status, string(body))
	require.Contains(t, string(body), `"amount":"75.00 USD"`)

	status, _ = postJSON(t, client, srv.URL+"/api/mileage/import",
		map[string]any{"export_id": exp.ID, "firm_id": "acd"})
	require.Equal(t, http.StatusNotFound, status)

	resp, err := client.Get(srv.URL + "/api/mileage/trips")
	require.NoError(t, err)
	defer resp.Body.Close()
	var trips struct {
		Trips []calcBody `json:"trips"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trips))
	require.Len(t, trips.Trips, 1)
	require.Equal(t, "ACD", trips.Trips[0].Calculation.Policy.Name)
}

func postJSON(t *testing.T, client *http.Client, url string, body any) (int, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func redactedDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at == -1 || scheme == -1 || at <= scheme+3 {
		return dsn
	}
	return dsn[:scheme+3] + "***:***" + dsn[at:]
}
