package http_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	handler "github.com/vncsmyrnk/quickpoll/internal/adapters/handler/http"
	"github.com/vncsmyrnk/quickpoll/internal/adapters/repository/sqlstore"
	"github.com/vncsmyrnk/quickpoll/internal/core/services"
	"github.com/vncsmyrnk/quickpoll/internal/testutil"
)

type TestApp struct {
	DB     *sql.DB
	Server *httptest.Server
}

type optionJSON struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	Votes   int64     `json:"votes"`
	Percent int       `json:"percent"`
}

type snapshotJSON struct {
	OK         bool         `json:"ok"`
	ID         uuid.UUID    `json:"id"`
	Question   string       `json:"question"`
	TotalVotes int64        `json:"totalVotes"`
	Options    []optionJSON `json:"options"`
}

func setupTestApp(t *testing.T, db *sql.DB) *TestApp {
	t.Helper()

	pollRepo := sqlstore.NewPollRepository(db)
	voteRepo := sqlstore.NewVoteRepository(db)

	identity, err := services.NewIdentityService(testutil.TestVoterSecret)
	require.NoError(t, err)

	pollSvc := services.NewPollService(pollRepo)
	voteSvc := services.NewVoteService(pollRepo, voteRepo)
	tallySvc := services.NewTallyService(pollRepo, voteRepo)

	pollHandler := handler.NewPollHandler(pollSvc, tallySvc)
	voteHandler := handler.NewVoteHandler(voteSvc, tallySvc, identity, handler.VoterCookie{})
	router := handler.NewHandler(pollHandler, voteHandler, db.PingContext, []string{"*"})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestApp{DB: db, Server: server}
}

// NewBrowser returns a client that keeps cookies, like one browser would.
func (app *TestApp) NewBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (app *TestApp) post(t *testing.T, client *http.Client, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := client.Post(app.Server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func (app *TestApp) get(t *testing.T, client *http.Client, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(app.Server.URL + path)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) createPoll(t *testing.T, question string, options ...string) uuid.UUID {
	t.Helper()
	resp := app.post(t, http.DefaultClient, "/api/polls", map[string]any{
		"question": question,
		"options":  options,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created.ID
}

func (app *TestApp) snapshot(t *testing.T, pollID uuid.UUID) snapshotJSON {
	t.Helper()
	resp := app.get(t, http.DefaultClient, "/api/polls/"+pollID.String())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeSnapshot(t, resp)
}

func (app *TestApp) vote(t *testing.T, client *http.Client, pollID, optionID uuid.UUID) *http.Response {
	t.Helper()
	return app.post(t, client, fmt.Sprintf("/api/polls/%s/vote", pollID), map[string]any{
		"optionId": optionID,
	})
}

func decodeSnapshot(t *testing.T, resp *http.Response) snapshotJSON {
	t.Helper()
	var snap snapshotJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	return snap
}

func voterCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "uid" {
			return c
		}
	}
	return nil
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}
