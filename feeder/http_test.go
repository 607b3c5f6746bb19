package feeder_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"idea-feed/feeder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetriesOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"data":{"id":"7","username":"x","name":"X"}}`)
	}))
	defer srv.Close()

	client := feeder.NewTwitterClient("bearer", feeder.TwitterOptions{APIURL: srv.URL, HTTP: fastHTTP})
	user, err := client.UserByUsername(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "7", user.ID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := feeder.NewTwitterClient("bearer", feeder.TwitterOptions{APIURL: srv.URL, HTTP: fastHTTP})
	_, err := client.UserByUsername(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, int32(fastHTTP.MaxRetries+1), calls.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	client := feeder.NewTwitterClient("bearer", feeder.TwitterOptions{APIURL: srv.URL, HTTP: fastHTTP})
	_, err := client.UserByUsername(context.Background(), "x")

	var se *feeder.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}
