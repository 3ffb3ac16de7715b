package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rustyeddy/gwmodule/client"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFirmwareInstall(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/devices/sim1/firmware/install", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	oldCli, oldURL := cli, serverURL
	defer func() { cli, serverURL = oldCli, oldURL }()
	cli, serverURL = client.NewClient(ts.URL), ts.URL

	out := new(bytes.Buffer)
	oldOut := cmdOutput
	defer func() { cmdOutput = oldOut }()
	cmdOutput = out

	require.NoError(t, runFirmwareInstall(&cobra.Command{}, []string{"sim1", "/tmp/fw.bin"}))
	assert.Contains(t, out.String(), "started")
}

func TestRunFirmwareAbort(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/devices/sim1/firmware/abort", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	oldCli, oldURL := cli, serverURL
	defer func() { cli, serverURL = oldCli, oldURL }()
	cli, serverURL = client.NewClient(ts.URL), ts.URL

	out := new(bytes.Buffer)
	oldOut := cmdOutput
	defer func() { cmdOutput = oldOut }()
	cmdOutput = out

	require.NoError(t, runFirmwareAbort(&cobra.Command{}, []string{"sim1"}))
	assert.Contains(t, out.String(), "aborted")
}
