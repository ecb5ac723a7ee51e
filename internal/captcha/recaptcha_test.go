package captcha

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteverify(t *testing.T, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRecaptchaVerify(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantAccepted bool
		wantScore    bool
	}{
		{"v3 high score", `{"success":true,"score":0.9}`, true, true},
		{"v3 exactly min score", `{"success":true,"score":0.5}`, true, true},
		{"v3 low score", `{"success":true,"score":0.3}`, false, true},
		{"v2 success without score", `{"success":true}`, true, false},
		{"failure", `{"success":false,"error-codes":["invalid-input-response"]}`, false, false},
		{"failure with good score", `{"success":false,"score":0.9}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := siteverify(t, tt.body, nil)
			v := NewRecaptchaVerifier(RecaptchaConfig{Secret: "s3cret", VerifyURL: srv.URL, MinScore: 0.5})

			verdict, err := v.Verify(context.Background(), "token", "198.51.100.4")
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccepted, verdict.Accepted)
			assert.Equal(t, tt.wantScore, verdict.Score != nil)
		})
	}
}

func TestRecaptchaSendsSecretTokenAndIP(t *testing.T) {
	srv := siteverify(t, `{"success":true}`, func(r *http.Request) {
		assert.Equal(t, "s3cret", r.PostForm.Get("secret"))
		assert.Equal(t, "tok-123", r.PostForm.Get("response"))
		assert.Equal(t, "198.51.100.4", r.PostForm.Get("remoteip"))
	})
	v := NewRecaptchaVerifier(RecaptchaConfig{Secret: "s3cret", VerifyURL: srv.URL})

	_, err := v.Verify(context.Background(), "tok-123", "198.51.100.4")
	require.NoError(t, err)
}

func TestRecaptchaOmitsUnknownIP(t *testing.T) {
	srv := siteverify(t, `{"success":true}`, func(r *http.Request) {
		_, ok := r.PostForm["remoteip"]
		assert.False(t, ok)
	})
	v := NewRecaptchaVerifier(RecaptchaConfig{Secret: "s3cret", VerifyURL: srv.URL})

	_, err := v.Verify(context.Background(), "tok", "unknown")
	require.NoError(t, err)
}

func TestRecaptchaErrors(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		v := NewRecaptchaVerifier(RecaptchaConfig{Secret: "s"})
		_, err := v.Verify(context.Background(), "", "")
		assert.True(t, errors.Is(err, ErrVerify))
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := siteverify(t, `not json`, nil)
		v := NewRecaptchaVerifier(RecaptchaConfig{Secret: "s", VerifyURL: srv.URL})
		_, err := v.Verify(context.Background(), "tok", "")
		assert.ErrorIs(t, err, ErrVerify)
	})

	t.Run("upstream 500", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()
		v := NewRecaptchaVerifier(RecaptchaConfig{Secret: "s", VerifyURL: srv.URL})
		_, err := v.Verify(context.Background(), "tok", "")
		assert.ErrorIs(t, err, ErrVerify)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()
		v := NewRecaptchaVerifier(RecaptchaConfig{Secret: "s", VerifyURL: srv.URL, Timeout: 20 * time.Millisecond})
		_, err := v.Verify(context.Background(), "tok", "")
		assert.ErrorIs(t, err, ErrVerify)
	})
}

func TestNewSelectsStrategy(t *testing.T) {
	assert.IsType(t, NullVerifier{}, New(RecaptchaConfig{}))
	assert.IsType(t, &RecaptchaVerifier{}, New(RecaptchaConfig{Secret: "s"}))

	verdict, err := NullVerifier{}.Verify(context.Background(), "", "")
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
}
