package restyutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mu       sync.Mutex
	messages map[string]string
}

func (o *memoryOutput) Write(id string, contents string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages[id] = contents
}

func TestInstrumentClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<table class=\"table\"></table>"))
	}))
	defer server.Close()

	output := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	InstrumentClient(client, nil, output)

	_, err := client.R().Get(server.URL + "/ps36?xjazyk=CZ")
	require.NoError(t, err)
	_, err = client.R().Get(server.URL + "/missing")
	require.NoError(t, err)

	require.Len(t, output.messages, 2)
	require.Contains(t, output.messages["0001"], "GET "+server.URL+"/ps36?xjazyk=CZ")
	require.Contains(t, output.messages["0001"], `<table class="table"></table>`)
	require.Contains(t, output.messages["0002"], "404 ")
}

func TestFormatRequestBody(t *testing.T) {
	testCases := []struct {
		name     string
		getBody  func() (io.ReadCloser, error)
		expected string
	}{
		{
			name:     "no GetBody",
			expected: "",
		},
		{
			name: "nil body",
			getBody: func() (io.ReadCloser, error) {
				return nil, nil
			},
			expected: "",
		},
		{
			name: "NoBody",
			getBody: func() (io.ReadCloser, error) {
				return http.NoBody, nil
			},
			expected: "",
		},
		{
			name: "form body",
			getBody: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("xjazyk=CZ")), nil
			},
			expected: "xjazyk=CZ",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ps36", nil)
			req.GetBody = test.getBody
			require.Equal(t, test.expected, formatRequestBody(req))
		})
	}
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")
	require.NoError(t, os.MkdirAll(dir, 0777))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.txt"), []byte("old"), 0600))

	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	output.Write("0001", "exchange")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	contents, err := os.ReadFile(filepath.Join(dir, "0001.txt"))
	require.NoError(t, err)
	require.Equal(t, "exchange", string(contents))
}
