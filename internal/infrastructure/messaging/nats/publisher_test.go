package nats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := newMessage("maintenance.alerts.dismiss", map[string]string{"machine_id": "CNV_02"})
	require.NoError(t, err)

	assert.Equal(t, "maintenance.alerts.dismiss", msg.Subject)
	assert.Equal(t, "application/json", msg.Header.Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(msg.Data, &body))
	assert.Equal(t, "CNV_02", body["machine_id"])
}

func TestNewMessageRejectsUnencodable(t *testing.T) {
	_, err := newMessage("x", make(chan int))
	assert.Error(t, err)
}
