package getnet

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() SessionRequest {
	return SessionRequest{
		Auth:       NewAuth("merchant", "secret", []byte("nonce"), fixedSeed),
		Locale:     "es_CL",
		Payment:    Payment{Reference: "R1", Description: "D", Amount: Amount{Currency: "CLP", Total: 10000}},
		Expiration: fixedSeed.Add(15 * time.Minute).Format(time.RFC3339),
		ReturnURL:  "https://entrealasyraices.cl/confirmacion.html?reference=R1",
		IPAddress:  "127.0.0.1",
		UserAgent:  "test",
	}
}

func TestCreateSession_Success(t *testing.T) {
	var got SessionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, SessionPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":{"status":"OK","reason":"PC","message":"La petición se ha procesado correctamente"},"requestId":1234,"processUrl":"https://checkout.test/session/1234/abc"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", srv.Client(), nil)
	resp, err := c.CreateSession(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.True(t, resp.Succeeded())
	assert.Equal(t, "1234", resp.RequestID.String())
	assert.Equal(t, "https://checkout.test/session/1234/abc", resp.ProcessURL)
	assert.Equal(t, http.StatusOK, resp.HTTPStatus)

	assert.Equal(t, int64(10000), got.Payment.Amount.Total)
	assert.Equal(t, "R1", got.Payment.Reference)
	assert.Equal(t, "merchant", got.Auth.Login)
}

func TestCreateSession_RejectedNumericReason(t *testing.T) {
	body := `{"status":{"status":"FAILED","reason":401,"message":"Autenticación fallida 101"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, srv.Client(), nil).CreateSession(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.False(t, resp.Succeeded())
	assert.Equal(t, Reason("401"), resp.Status.Reason)
	assert.JSONEq(t, body, string(resp.Raw))
}

func TestCreateSession_RejectedKeepsRawBody(t *testing.T) {
	body := `{"status":{"status":"FAILED","reason":"XN","message":"Autenticación fallida 101"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, srv.Client(), nil).CreateSession(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.False(t, resp.Succeeded())
	assert.Equal(t, http.StatusUnauthorized, resp.HTTPStatus)
	assert.JSONEq(t, body, string(resp.Raw))
}

func TestCreateSession_OKWithoutProcessURLIsNotSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":{"status":"OK"},"requestId":"99"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, srv.Client(), nil).CreateSession(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.False(t, resp.Succeeded())
	assert.Equal(t, "99", resp.RequestID.String())
}

func TestCreateSession_NonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), nil).CreateSession(context.Background(), sampleRequest())
	require.Error(t, err)

	var fe *UpstreamFormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "<html>502 Bad Gateway</html>", fe.Raw)
	assert.Equal(t, http.StatusBadGateway, fe.HTTPStatus)
}

func TestCreateSession_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, &http.Client{}, nil).CreateSession(context.Background(), sampleRequest())
	var te *TransportError
	assert.True(t, errors.As(err, &te))
}

func TestCreateSession_MissingBaseURL(t *testing.T) {
	_, err := NewClient("", nil, nil).CreateSession(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrMissingBaseURL)
}

func TestCreateSession_StringRequestID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":{"status":"OK"},"requestId":"a1b2","processUrl":"https://checkout.test/session/a1b2"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, srv.Client(), nil).CreateSession(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.True(t, resp.Succeeded())
	assert.Equal(t, RequestID("a1b2"), resp.RequestID)
}

func TestRequestID_MarshalJSON(t *testing.T) {
	for id, want := range map[RequestID]string{
		"1234": `1234`,
		"0":    `0`,
		"a1b2": `"a1b2"`,
		"007":  `"007"`,
		"1.5":  `"1.5"`,
	} {
		b, err := json.Marshal(id)
		require.NoError(t, err)
		assert.Equal(t, want, string(b), "id %q", id)
	}
}
