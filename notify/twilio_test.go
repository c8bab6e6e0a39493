package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestNotifier(url string) *TwilioNotifier {
	return NewTwilioNotifier(TwilioConfig{
		BaseURL:    url,
		AccountSID: "AC123",
		AuthToken:  "secret",
		FromNumber: "+15550001111",
		Timeout:    2 * time.Second,
	}, zap.NewNop())
}

func TestTwilioNotifier_Send(t *testing.T) {
	var gotPath, gotTo, gotFrom, gotBody, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		_ = r.ParseForm()
		gotTo = r.PostForm.Get("To")
		gotFrom = r.PostForm.Get("From")
		gotBody = r.PostForm.Get("Body")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
	}))
	defer srv.Close()

	err := newTestNotifier(srv.URL).Send(context.Background(), "923001234567", "Complaint #1")
	require.NoError(t, err)

	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "+923001234567", gotTo)
	assert.Equal(t, "+15550001111", gotFrom)
	assert.Equal(t, "Complaint #1", gotBody)
}

func TestTwilioNotifier_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"Invalid 'To' Phone Number"}`))
	}))
	defer srv.Close()

	err := newTestNotifier(srv.URL).Send(context.Background(), "+123", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid 'To' Phone Number")
}

func TestLogNotifier_NeverFails(t *testing.T) {
	assert.NoError(t, NewLogNotifier(zap.NewNop()).Send(context.Background(), "1", "hi"))
}
