package asn1

import (
	"testing"

	"github.com/hhorai/ranpdu/encoding/per"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleMessageRoundTripGNBBranch(t *testing.T) {
	msg := NewExampleMessage()
	msg.PLMNIdentity.Value = []byte{0x00, 0xF1, 0x10}
	msg.NodeID.Tag = nodeIDTagGNB
	msg.NodeID.Variant = &BoundedBitString{Lb: 22, Ub: 32, Value: per.BitField{Bits: []byte{0x01, 0x02, 0x03, 0x00}, NBits: 28}}

	w := per.NewWriter(make([]byte, 0, 32))
	require.NoError(t, msg.Pack(w))

	got := NewExampleMessage()
	r := per.NewReader(w.Bytes())
	require.NoError(t, got.Unpack(r))

	assert.Equal(t, msg.PLMNIdentity.Value, got.PLMNIdentity.Value)
	assert.Equal(t, nodeIDTagGNB, got.NodeID.Tag)
	assert.Nil(t, got.SupportedTAs)
	gotBits := got.NodeID.Variant.(*BoundedBitString)
	assert.Equal(t, 28, gotBits.Value.NBits)
}

func TestExampleMessageRoundTripWithSupportedTAs(t *testing.T) {
	msg := NewExampleMessage()
	msg.PLMNIdentity.Value = []byte{0x00, 0xF1, 0x10}
	msg.NodeID.Tag = nodeIDTagNgENB
	msg.NodeID.Variant = &FixedBitString{N: 20, Value: per.BitField{Bits: []byte{0x12, 0x34, 0x00}, NBits: 20}}
	msg.SupportedTAs = &DynSeqOf[*TAItem]{
		Lb: 1, Ub: 256,
		Items: []*TAItem{
			{TAC: FixedOctetString{N: 3, Value: []byte{0x00, 0x00, 0x01}}, BroadcastPLMN: FixedOctetString{N: 3, Value: []byte{0x00, 0xF1, 0x10}}},
		},
	}

	w := per.NewWriter(make([]byte, 0, 32))
	require.NoError(t, msg.Pack(w))

	got := NewExampleMessage()
	r := per.NewReader(w.Bytes())
	require.NoError(t, got.Unpack(r))

	require.NotNil(t, got.SupportedTAs)
	require.Len(t, got.SupportedTAs.Items, 1)
	assert.Equal(t, []byte{0x00, 0x00, 0x01}, got.SupportedTAs.Items[0].TAC.Value)
}

func TestExampleMessageToJSON(t *testing.T) {
	msg := NewExampleMessage()
	msg.PLMNIdentity.Value = []byte{0x00, 0xF1, 0x10}
	jw := NewJSONWriter()
	msg.ToJSON(jw)
	assert.Contains(t, jw.String(), "plmnIdentity")
}
