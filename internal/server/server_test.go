package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/itswill307/TheNewSuzerainProject/internal/session"
)

func newTestRelay(t *testing.T) (*ServerContext, string) {
	t.Helper()
	ctx := NewServerContext()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/host", ctx.HandleHost)
	mux.HandleFunc("/ws/join", ctx.HandleJoin)
	mux.HandleFunc("/api/sessions", ctx.HandleSessions)
	mux.HandleFunc("/", ctx.HandleStatus)

	srv := httptest.NewServer(RequestLogger(mux))
	t.Cleanup(srv.Close)

	return ctx, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHostGetsJoinCode(t *testing.T) {
	ctx, wsURL := newTestRelay(t)

	host := session.New(wsURL, false)
	code, err := host.Host()
	require.NoError(t, err)
	require.Len(t, code, 8)
	require.Equal(t, strings.ToUpper(code), code)
	require.Equal(t, code, host.Code())
	require.Equal(t, 1, ctx.SessionCount())

	host.Close()
	require.Eventually(t, func() bool { return ctx.SessionCount() == 0 },
		time.Second, 10*time.Millisecond, "session must die with the host")
}

func TestJoinUnknownCode(t *testing.T) {
	_, wsURL := newTestRelay(t)

	guest := session.New(wsURL, false)
	require.Error(t, guest.Join("NOPE1234"))
}

func TestRelayForwardsFrames(t *testing.T) {
	_, wsURL := newTestRelay(t)

	host := session.New(wsURL, false)
	code, err := host.Host()
	require.NoError(t, err)
	defer host.Close()

	guest := session.New(wsURL, false)
	require.NoError(t, guest.Join(code))
	require.Equal(t, code, guest.Code())

	// The relay tells the host about the arrival first.
	frame, err := host.Receive()
	require.NoError(t, err)
	var ctl struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(frame, &ctl))
	require.Equal(t, "peer_joined", ctl.Type)

	// Guest to host.
	require.NoError(t, guest.Send(map[string]any{"type": "select", "id": 7}))
	frame, err = host.Receive()
	require.NoError(t, err)
	var pick struct {
		Type string `json:"type"`
		ID   int32  `json:"id"`
	}
	require.NoError(t, json.Unmarshal(frame, &pick))
	require.Equal(t, "select", pick.Type)
	require.Equal(t, int32(7), pick.ID)

	// Host to guest.
	require.NoError(t, host.Send(map[string]any{"type": "select", "id": 300}))
	frame, err = guest.Receive()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(frame, &pick))
	require.Equal(t, int32(300), pick.ID)

	// Guest leaving notifies the host.
	guest.Close()
	frame, err = host.Receive()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(frame, &ctl))
	require.Equal(t, "peer_left", ctl.Type)
}

func TestSecondGuestRejected(t *testing.T) {
	_, wsURL := newTestRelay(t)

	host := session.New(wsURL, false)
	code, err := host.Host()
	require.NoError(t, err)
	defer host.Close()

	first := session.New(wsURL, false)
	require.NoError(t, first.Join(code))
	defer first.Close()

	second := session.New(wsURL, false)
	require.Error(t, second.Join(code))
}

func TestConcurrentJoinsSingleWinner(t *testing.T) {
	_, wsURL := newTestRelay(t)

	host := session.New(wsURL, false)
	code, err := host.Host()
	require.NoError(t, err)
	defer host.Close()

	// All joiners race for the single guest slot at once; the claim is
	// atomic, so exactly one may win no matter how the upgrades interleave.
	const joiners = 4
	var wins atomic.Int32
	var wg sync.WaitGroup
	clients := make([]*session.Client, joiners)
	for i := range clients {
		clients[i] = session.New(wsURL, false)
		wg.Add(1)
		go func(c *session.Client) {
			defer wg.Done()
			if c.Join(code) == nil {
				wins.Add(1)
			}
		}(clients[i])
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load(), "one guest slot, one winner")
	for _, c := range clients {
		c.Close()
	}
}

func TestStatusPageETag(t *testing.T) {
	_, wsURL := newTestRelay(t)
	httpURL := "http" + strings.TrimPrefix(wsURL, "ws")

	resp, err := http.Get(httpURL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req, err := http.NewRequest(http.MethodGet, httpURL+"/", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	require.Equal(t, http.StatusNotModified, resp2.StatusCode)
}

func TestSessionsEndpoint(t *testing.T) {
	_, wsURL := newTestRelay(t)
	httpURL := "http" + strings.TrimPrefix(wsURL, "ws")

	host := session.New(wsURL, false)
	_, err := host.Host()
	require.NoError(t, err)
	defer host.Close()

	resp, err := http.Get(httpURL + "/api/sessions")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 1, body["sessions"])
}
