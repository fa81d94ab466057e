package watch

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/aidctl/internal/pkg/notify"
	"github.com/alfurqan/aidctl/internal/pkg/output"
	"github.com/alfurqan/aidctl/internal/pkg/records"
)

func TestPrintUpdate_JSON(t *testing.T) {
	var buf bytes.Buffer
	u := notify.Update{Count: 2, New: []records.Notification{{ID: 9, Username: "sara", Action: "add_aid", IsNew: true}}}
	require.NoError(t, printUpdate(&buf, output.FormatJSON, u, false))

	var ev pollEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, 2, ev.Count)
	require.Len(t, ev.New, 1)
	assert.Equal(t, 9, ev.New[0].ID)
	assert.Empty(t, ev.Error)
}

func TestPrintUpdate_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUpdate(&buf, output.FormatTable, notify.Update{Count: 0}, true))
	assert.Contains(t, buf.String(), "0 unread")

	buf.Reset()
	require.NoError(t, printUpdate(&buf, output.FormatTable, notify.Update{Count: 0}, false))
	assert.Empty(t, buf.String())

	buf.Reset()
	u := notify.Update{Count: 1, New: []records.Notification{{Username: "sara", Action: "add_resident", TargetName: "أحمد"}}}
	require.NoError(t, printUpdate(&buf, output.FormatTable, u, false))
	assert.Contains(t, buf.String(), "sara add_resident أحمد")
	assert.Contains(t, buf.String(), "1 unread")

	buf.Reset()
	require.NoError(t, printUpdate(&buf, output.FormatTable, notify.Update{Count: 3, Err: errors.New("timeout")}, false))
	assert.Contains(t, buf.String(), "poll failed: timeout")
}
