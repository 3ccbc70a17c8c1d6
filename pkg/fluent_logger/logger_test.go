package fluentlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresTagPrefix(t *testing.T) {
	_, err := NewClient(Config{Host: "127.0.0.1", Port: 24224})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag prefix")
}

func TestNewClient_AsyncDoesNotDial(t *testing.T) {
	client, err := NewClient(Config{Host: "127.0.0.1", Port: 1, TagPrefix: "proconnect-backend", Async: true})
	require.NoError(t, err)
	require.NotNil(t, client)
	_ = client.Close()
}
