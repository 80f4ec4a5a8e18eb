package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventas-crm/tracker/model"
)

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	b, err := Encode(UpdateConnectedUsers, model.ConnectedUsers{Total: 3, Employees: 2, Admins: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"updateConnectedUsers","body":{"totalConnectedUsers":3,"totalEmployees":2,"totalAdmins":1}}`, string(b))

	m, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, UpdateConnectedUsers, m.Type)

	var counts model.ConnectedUsers
	require.NoError(t, m.UnmarshalBody(&counts))
	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 1, counts.Admins)
}

func TestDecode_NoBody(t *testing.T) {
	t.Parallel()

	m, err := Decode([]byte(`{"type":"requestConnectedUsers"}`))
	require.NoError(t, err)
	assert.Equal(t, RequestConnectedUsers, m.Type)

	var v struct{}
	assert.NoError(t, m.UnmarshalBody(&v))

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}
