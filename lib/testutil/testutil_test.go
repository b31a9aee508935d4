package testutil

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) (int, string) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body)
}

func TestNewSite(t *testing.T) {
	base := NewSite(t, Pages{
		"ps36":            "listing",
		"ps361?xokrsek=3": "precinct 3",
	})

	testCases := []struct {
		path   string
		status int
		body   string
	}{
		{path: "ps36?xjazyk=CZ", status: http.StatusOK, body: "listing"},
		{path: "ps361?xjazyk=CZ&xkontinent=1&xokrsek=3", status: http.StatusOK, body: "precinct 3"},
		{path: "ps361?xjazyk=CZ&xokrsek=4", status: http.StatusNotFound},
	}

	for _, test := range testCases {
		status, body := get(t, base+test.path)
		require.Equal(t, test.status, status, test.path)
		if test.body != "" {
			require.Equal(t, test.body, body)
		}
	}
}

func TestElectionPages(t *testing.T) {
	base := NewSite(t, ElectionPages())

	status, body := get(t, base+"ps311?xjazyk=CZ&xkraj=2&xobec=529303&xvyber=2101")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, Fixture("municipality_detail"), body)

	require.Panics(t, func() { Fixture("missing") })
}
