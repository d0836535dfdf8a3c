package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeID_Numbering(t *testing.T) {
	// Consumers store these ids; they must never shift.
	assert.Equal(t, 0, int(Unknown))
	assert.Equal(t, 1, int(Hostname))
	assert.Equal(t, 2, int(IPAddress))
	assert.Equal(t, 3, int(MACAddress))
	assert.Equal(t, 4, int(UserName))
	assert.Equal(t, 5, int(EmailAddress))
	assert.Equal(t, 6, int(URLString))
	assert.Equal(t, 7, int(FileName))
	assert.Equal(t, 8, int(Hash))
	assert.Equal(t, 12, int(Subnet))
	assert.Equal(t, 16, int(HTTPUserAgent))
	assert.Equal(t, 20, int(Endpoint))
	assert.Equal(t, 30, int(Fingerprint))
	assert.Equal(t, 45, int(FilePath))
	assert.Equal(t, 46, int(RegistryKeyPath))
	assert.Equal(t, 48, int(NetworkEndpointUID))
	assert.Equal(t, 99, int(Other))
}

func TestTypeID_String(t *testing.T) {
	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "IP Address", IPAddress.String())
	assert.Equal(t, "URL String", URLString.String())
	assert.Equal(t, "HTTP User-Agent", HTTPUserAgent.String())
	assert.Equal(t, "Network Endpoint Object: uid", NetworkEndpointUID.String())
	assert.Equal(t, "Other", Other.String())
	assert.Equal(t, "TypeID(77)", TypeID(77).String())
}

func TestTypeID_Ranges(t *testing.T) {
	assert.True(t, Endpoint.IsObjectType())
	assert.True(t, Fingerprint.IsObjectType())
	assert.False(t, UserUID.IsObjectType())
	assert.False(t, IPAddress.IsObjectType())

	assert.True(t, NetworkEndpointUID.IsValid())
	assert.True(t, Other.IsValid())
	assert.False(t, TypeID(49).IsValid())
	assert.False(t, TypeID(-1).IsValid())
}

func TestNewRecord(t *testing.T) {
	r := NewRecord("src_endpoint.ip", IPAddress, "10.0.0.1")
	assert.Equal(t, Record{Name: "src_endpoint.ip", TypeID: IPAddress, Type: "IP Address", Value: "10.0.0.1"}, r)
	assert.Equal(t, map[string]any{
		"name": "src_endpoint.ip", "type_id": 2.0, "type": "IP Address", "value": "10.0.0.1",
	}, r.Map())

	obj := NewRecord("device", Endpoint, map[string]any{"ip": "10.0.0.1"})
	assert.Nil(t, obj.Value)
	assert.NotContains(t, obj.Map(), "value")

	empty := NewRecord("user.name", UserName, "")
	assert.Nil(t, empty.Value)
}
