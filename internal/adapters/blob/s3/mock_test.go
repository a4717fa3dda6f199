package s3

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type mockObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// mockTransport es un S3 en memoria a nivel HTTP: HEAD, GET, PUT y DELETE por path-style.
type mockTransport struct {
	mu      sync.Mutex
	objects map[string]mockObject
}

func newMockStore(cfg Config) (*Store, *mockTransport) {
	rt := &mockTransport{objects: map[string]mockObject{}}
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
	)
	if err != nil {
		panic(err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})
	return NewWithClient(client, cfg), rt
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.TrimPrefix(req.URL.Path, "/")
	if _, rest, ok := strings.Cut(key, "/"); ok {
		key = rest
	}

	switch req.Method {
	case http.MethodHead, http.MethodGet:
		obj, ok := m.objects[key]
		if !ok {
			return respond(req, http.StatusNotFound, nil, nil), nil
		}
		h := http.Header{}
		h.Set("Content-Length", strconv.Itoa(len(obj.data)))
		h.Set("Content-Type", obj.contentType)
		h.Set("ETag", fmt.Sprintf("%q", fmt.Sprintf("etag-%d", len(obj.data))))
		h.Set("Last-Modified", obj.modified.UTC().Format(http.TimeFormat))
		if req.Method == http.MethodHead {
			return respond(req, http.StatusOK, h, nil), nil
		}
		return respond(req, http.StatusOK, h, obj.data), nil
	case http.MethodPut:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") {
			if body, err = decodeChunked(body); err != nil {
				return nil, err
			}
		}
		m.objects[key] = mockObject{data: body, contentType: req.Header.Get("Content-Type"), modified: time.Now()}
		return respond(req, http.StatusOK, http.Header{"ETag": []string{`"etag"`}}, nil), nil
	case http.MethodDelete:
		delete(m.objects, key)
		return respond(req, http.StatusNoContent, nil, nil), nil
	}
	return respond(req, http.StatusMethodNotAllowed, nil, nil), nil
}

func respond(req *http.Request, status int, h http.Header, body []byte) *http.Response {
	if h == nil {
		h = http.Header{}
	}
	return &http.Response{
		StatusCode:    status,
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

// decodeChunked entiende el framing aws-chunked: `<hex>[;ext]\r\n<datos>\r\n` hasta un chunk 0.
func decodeChunked(b []byte) ([]byte, error) {
	r := bufio.NewReader(bytes.NewReader(b))
	var out bytes.Buffer
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(line), ";")
		n, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return out.Bytes(), nil
		}
		if _, err := io.CopyN(&out, r, n); err != nil {
			return nil, err
		}
		if _, err := r.Discard(2); err != nil {
			return nil, err
		}
	}
}
