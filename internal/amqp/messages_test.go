package amqp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCompletedMessage_WireFormat(t *testing.T) {
	before := time.Now().UTC()
	msg := NewImportCompletedMessage("http", 60, 58)

	body, err := msg.ToJSON()
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Equal(t, "http", fields["source"])
	assert.EqualValues(t, 60, fields["fetched"])
	assert.EqualValues(t, 58, fields["inserted"])
	assert.Contains(t, fields, "timestamp")

	var decoded ImportCompletedMessage
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, 58, decoded.Inserted)
	assert.False(t, decoded.Timestamp.Before(before.Truncate(time.Second)))
}
