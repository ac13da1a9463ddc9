package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type recorded struct {
	method string
	path   string
	body   string
	ctype  string
}

func fakeS3(t *testing.T) (*httptest.Server, func() []recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{r.Method, r.URL.Path, string(body), r.Header.Get("Content-Type")})
		mu.Unlock()
		if r.Method == http.MethodPut {
			w.Header().Set("ETag", `"abc123"`)
		}
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func TestS3UploaderUploadAndDelete(t *testing.T) {
	srv, requests := fakeS3(t)
	ctx := context.Background()

	up, err := NewS3Uploader(ctx, S3UploaderConfig{
		Endpoint:        srv.URL,
		Bucket:          "archive",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	if err != nil {
		t.Fatalf("NewS3Uploader: %v", err)
	}

	res, err := up.Upload(ctx, "seasons/s1/x.csv", "text/csv", strings.NewReader("a,b\n"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.ETag != "abc123" || res.Key != "seasons/s1/x.csv" {
		t.Errorf("result = %+v", res)
	}

	if err := up.Delete(ctx, "seasons/s1/x.csv"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	reqs := requests()
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want 2", len(reqs))
	}
	if reqs[0].method != http.MethodPut || reqs[0].path != "/archive/seasons/s1/x.csv" {
		t.Errorf("put request = %+v", reqs[0])
	}
	if reqs[0].ctype != "text/csv" {
		t.Errorf("content type = %q", reqs[0].ctype)
	}
	if reqs[1].method != http.MethodDelete {
		t.Errorf("second request = %+v", reqs[1])
	}
}

func TestS3UploaderRequiresBucketAndCredentials(t *testing.T) {
	if _, err := NewS3Uploader(context.Background(), S3UploaderConfig{AccessKeyID: "k", SecretAccessKey: "s"}); err == nil {
		t.Error("expected error without bucket")
	}
	if _, err := NewS3Uploader(context.Background(), S3UploaderConfig{Bucket: "b"}); err == nil {
		t.Error("expected error without credentials")
	}
}
