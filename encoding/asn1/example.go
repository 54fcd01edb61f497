// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package asn1

import "github.com/hhorai/ranpdu/encoding/per"

// TAItem is a single tracking-area entry, grounded on the
// SupportedTAItem pattern used throughout the teacher's encoding/ngap/
// ngap.go (a fixed TAC octet string paired with a PLMN list).
type TAItem struct {
	TAC        FixedOctetString // 3 octets
	BroadcastPLMN FixedOctetString // 3 octets, one PLMN for this demo
}

func (t *TAItem) Pack(w *per.Writer) error {
	t.TAC.N = 3
	t.BroadcastPLMN.N = 3
	if err := t.TAC.Pack(w); err != nil {
		return err
	}
	return t.BroadcastPLMN.Pack(w)
}

func (t *TAItem) Unpack(r *per.Reader) error {
	t.TAC.N = 3
	t.BroadcastPLMN.N = 3
	if err := t.TAC.Unpack(r); err != nil {
		return err
	}
	return t.BroadcastPLMN.Unpack(r)
}

const (
	nodeIDTagGNB    = 0
	nodeIDTagNgENB  = 1
	nodeIDNofTypes  = 2
)

// newNodeID builds the Choice variant for ExampleMessage.NodeID: a gNB ID
// carried as a 22..32 bit BIT STRING (regular branch), or an ng-eNB ID
// carried as a fixed 20-bit BIT STRING (regular branch). There is no
// extension branch in this demo catalog.
func newNodeID(isExtension bool, tag int) (Value, error) {
	switch tag {
	case nodeIDTagGNB:
		return &BoundedBitString{Lb: 22, Ub: 32}, nil
	case nodeIDTagNgENB:
		return &FixedBitString{N: 20}, nil
	default:
		return nil, per.ErrDecodeFail
	}
}

// ExampleMessage is a small demonstration type, built the way the
// teacher's encoding/ngap/ngap.go composes per.BitField-backed fields
// into a GlobalRANNodeID-shaped message, proving the templates in this
// package compose end to end: a fixed PLMN identity, a choice between a
// gNB and an ng-eNB node identifier, and an optional bounded list of
// supported tracking areas.
type ExampleMessage struct {
	PLMNIdentity  FixedOctetString // 3 octets, BCD-packed MCC/MNC
	NodeID        Choice
	SupportedTAs  *DynSeqOf[*TAItem] // optional; nil when absent
}

func NewExampleMessage() *ExampleMessage {
	return &ExampleMessage{
		PLMNIdentity: FixedOctetString{N: 3},
		NodeID: Choice{
			NofTypes: nodeIDNofTypes,
			Build:    newNodeID,
		},
	}
}

func (m *ExampleMessage) Pack(w *per.Writer) error {
	pre := SequencePreamble{Optionals: []bool{m.SupportedTAs != nil}}
	if err := pre.Pack(w); err != nil {
		return err
	}
	m.PLMNIdentity.N = 3
	if err := m.PLMNIdentity.Pack(w); err != nil {
		return err
	}
	if err := m.NodeID.Pack(w); err != nil {
		return err
	}
	if m.SupportedTAs != nil {
		if err := m.SupportedTAs.Pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *ExampleMessage) Unpack(r *per.Reader) error {
	pre := SequencePreamble{Optionals: make([]bool, 1)}
	if err := pre.Unpack(r); err != nil {
		return err
	}
	m.PLMNIdentity.N = 3
	if err := m.PLMNIdentity.Unpack(r); err != nil {
		return err
	}
	m.NodeID = Choice{NofTypes: nodeIDNofTypes, Build: newNodeID}
	if err := m.NodeID.Unpack(r); err != nil {
		return err
	}
	if pre.Optionals[0] {
		seq := &DynSeqOf[*TAItem]{Lb: 1, Ub: 256, New: func() *TAItem { return &TAItem{} }}
		if err := seq.Unpack(r); err != nil {
			return err
		}
		m.SupportedTAs = seq
	} else {
		m.SupportedTAs = nil
	}
	return nil
}

func (m *ExampleMessage) ToJSON(jw *JSONWriter) {
	jw.StartObject()
	jw.WriteField("plmnIdentity", &m.PLMNIdentity)
	jw.EndObject()
}
