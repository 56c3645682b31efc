package profileio_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Oloruntobi1/flamescope/internal/profileio"
)

func TestPoller_FetchesImmediatelyThenOnInterval(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("tick"))
	}))
	defer srv.Close()

	poller := profileio.NewPoller(srv.URL, 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Millisecond)
	defer cancel()

	var received int32
	poller.Run(ctx, func(data []byte) {
		atomic.AddInt32(&received, 1)
	}, nil)

	require.GreaterOrEqual(t, atomic.LoadInt32(&received), int32(2))
}

func TestPoller_ErrorDoesNotStopPolling(t *testing.T) {
	poller := profileio.NewPoller("http://127.0.0.1:1/does-not-exist", 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	var errs int32
	poller.Run(ctx, func(data []byte) {}, func(err error) {
		atomic.AddInt32(&errs, 1)
	})

	require.GreaterOrEqual(t, atomic.LoadInt32(&errs), int32(1))
}

func TestNewPoller_NonPositiveIntervalDefaultsToFiveSeconds(t *testing.T) {
	p := profileio.NewPoller("http://example.com", 0)
	require.Equal(t, 5*time.Second, p.Interval)
}
