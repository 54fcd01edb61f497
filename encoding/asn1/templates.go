// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

// Package asn1 is the typed-value template layer of spec.md §4.2.3: a
// small set of compile-time-parameterised shapes that compose the
// primitive coders in encoding/per to implement the pack/unpack of a
// generated ASN.1 message catalog (RRC, S1AP, NGAP). The catalog itself is
// out of scope (spec.md §1) — these templates are what it would be built
// from, grounded on original_source/lib/include/srslte/asn1/asn1_utils.h
// (the bit_ref / pack_integer / pack_enum / pack_dyn_seq_of / choice /
// varlength_field_pack_guard templates) and on the message-by-message
// composition style of the teacher repo's encoding/ngap/ngap.go.
package asn1

import (
	"fmt"

	"github.com/hhorai/ranpdu/encoding/per"
)

// Value is satisfied by every typed value template below; generated
// message types compose Values the same way.
type Value interface {
	Pack(w *per.Writer) error
	Unpack(r *per.Reader) error
}

// JSONValue is implemented by templates that can render themselves for
// diagnostic dumps (spec.md §4.2.3 "optional to_json(&mut JsonWriter)").
type JSONValue interface {
	ToJSON(jw *JSONWriter)
}

// ConstrainedInt is an integer constrained to [Lb,Ub], optionally
// extensible.
type ConstrainedInt struct {
	Value       int64
	Lb, Ub      int64
	HasExt      bool
	IsExtension bool
}

func (v *ConstrainedInt) Pack(w *per.Writer) error {
	if v.HasExt {
		if err := w.PackExtensionBit(v.IsExtension); err != nil {
			return err
		}
	}
	if v.IsExtension {
		return w.PackUnconstrainedWholeNumber(v.Value)
	}
	return w.PackConstrainedWholeNumber(v.Value, v.Lb, v.Ub)
}

func (v *ConstrainedInt) Unpack(r *per.Reader) error {
	if v.HasExt {
		ext, err := r.UnpackExtensionBit()
		if err != nil {
			return err
		}
		v.IsExtension = ext
	}
	if v.IsExtension {
		n, err := r.UnpackUnconstrainedWholeNumber()
		if err != nil {
			return err
		}
		v.Value = n
		return nil
	}
	n, err := r.UnpackConstrainedWholeNumber(v.Lb, v.Ub)
	if err != nil {
		return err
	}
	v.Value = n
	return nil
}

func (v *ConstrainedInt) ToJSON(jw *JSONWriter) { jw.WriteInt(v.Value) }

// Enumerated is a discriminant over NofTypes regular values plus NofExts
// extension values.
type Enumerated struct {
	Index       int
	NofTypes    int
	NofExts     int
	HasExt      bool
	IsExtension bool
	Labels      []string // optional, regular-branch labels for diagnostics
}

func (v *Enumerated) Pack(w *per.Writer) error {
	return w.PackEnumerated(v.Index, v.NofTypes, v.NofExts, v.HasExt, v.IsExtension)
}

func (v *Enumerated) Unpack(r *per.Reader) error {
	idx, ext, err := r.UnpackEnumerated(v.NofTypes, v.NofExts, v.HasExt)
	if err != nil {
		return err
	}
	v.Index, v.IsExtension = idx, ext
	return nil
}

func (v *Enumerated) ToJSON(jw *JSONWriter) {
	if !v.IsExtension && v.Index < len(v.Labels) {
		jw.WriteString(v.Labels[v.Index])
		return
	}
	jw.WriteInt(int64(v.Index))
}

// FixedOctetString is an OCTET STRING of exactly N bytes.
type FixedOctetString struct {
	N     int
	Value []byte
}

func (v *FixedOctetString) Pack(w *per.Writer) error {
	if len(v.Value) != v.N {
		return fmt.Errorf("asn1: FixedOctetString: value has %d bytes, want %d: %w", len(v.Value), v.N, per.ErrEncodeFail)
	}
	return w.PackOctetString(v.Value, v.N, v.N)
}

func (v *FixedOctetString) Unpack(r *per.Reader) error {
	b, err := r.UnpackOctetString(v.N, v.N)
	if err != nil {
		return err
	}
	v.Value = b
	return nil
}

func (v *FixedOctetString) ToJSON(jw *JSONWriter) { jw.WriteHex(v.Value) }

// BoundedOctetString is an OCTET STRING whose length lies in [Lb,Ub].
type BoundedOctetString struct {
	Lb, Ub int
	Value  []byte
}

func (v *BoundedOctetString) Pack(w *per.Writer) error {
	return w.PackOctetString(v.Value, v.Lb, v.Ub)
}

func (v *BoundedOctetString) Unpack(r *per.Reader) error {
	b, err := r.UnpackOctetString(v.Lb, v.Ub)
	if err != nil {
		return err
	}
	v.Value = b
	return nil
}

func (v *BoundedOctetString) ToJSON(jw *JSONWriter) { jw.WriteHex(v.Value) }

// maxDynString is the implementation-defined upper bound for an
// unbounded OCTET STRING/BIT STRING (spec.md §4.2.3: "upper bound is the
// implementation's max, typically 64K").
const maxDynString = 65536

// DynOctetString is an unbounded OCTET STRING.
type DynOctetString struct{ Value []byte }

func (v *DynOctetString) Pack(w *per.Writer) error {
	return w.PackOctetString(v.Value, 0, maxDynString)
}

func (v *DynOctetString) Unpack(r *per.Reader) error {
	b, err := r.UnpackOctetString(0, maxDynString)
	if err != nil {
		return err
	}
	v.Value = b
	return nil
}

func (v *DynOctetString) ToJSON(jw *JSONWriter) { jw.WriteHex(v.Value) }

// FixedBitString is a BIT STRING of exactly N bits.
type FixedBitString struct {
	N      int
	HasExt bool
	Value  per.BitField
}

func (v *FixedBitString) Pack(w *per.Writer) error {
	return w.PackBitString(v.Value, v.N, v.N)
}

func (v *FixedBitString) Unpack(r *per.Reader) error {
	bf, err := r.UnpackBitString(v.N, v.N)
	if err != nil {
		return err
	}
	v.Value = bf
	return nil
}

// BoundedBitString is a BIT STRING whose length lies in [Lb,Ub].
type BoundedBitString struct {
	Lb, Ub int
	HasExt bool
	Value  per.BitField
}

func (v *BoundedBitString) Pack(w *per.Writer) error {
	return w.PackBitString(v.Value, v.Lb, v.Ub)
}

func (v *BoundedBitString) Unpack(r *per.Reader) error {
	bf, err := r.UnpackBitString(v.Lb, v.Ub)
	if err != nil {
		return err
	}
	v.Value = bf
	return nil
}

// DynSeqOf is a homogeneous SEQUENCE OF elements bounded in count by
// [Lb,Ub]. T must implement Value; New must return a fresh, ready-to-
// unpack-into element.
type DynSeqOf[T Value] struct {
	Lb, Ub int
	Items  []T
	New    func() T
}

func (v *DynSeqOf[T]) Pack(w *per.Writer) error {
	if len(v.Items) < v.Lb || len(v.Items) > v.Ub {
		return fmt.Errorf("asn1: DynSeqOf: %d items out of range [%d,%d]: %w", len(v.Items), v.Lb, v.Ub, per.ErrEncodeFail)
	}
	if err := w.PackSequenceOfHeader(len(v.Items), v.Lb, v.Ub); err != nil {
		return err
	}
	for i := range v.Items {
		if err := v.Items[i].Pack(w); err != nil {
			return err
		}
	}
	return nil
}

func (v *DynSeqOf[T]) Unpack(r *per.Reader) error {
	n, err := r.UnpackSequenceOfHeader(v.Lb, v.Ub)
	if err != nil {
		return err
	}
	items := make([]T, n)
	for i := 0; i < n; i++ {
		items[i] = v.New()
		if err := items[i].Unpack(r); err != nil {
			return err
		}
	}
	v.Items = items
	return nil
}

// Choice is a discriminated union over NofTypes regular variants plus
// NofExts extension variants. Build builds a fresh Value for a given
// (isExtension, tag) pair so Unpack knows what to decode into; Variant
// holds the packed/unpacked payload.
type Choice struct {
	Tag         int
	NofTypes    int
	NofExts     int
	HasExt      bool
	IsExtension bool
	Variant     Value
	Build       func(isExtension bool, tag int) (Value, error)
}

func (v *Choice) Pack(w *per.Writer) error {
	if v.HasExt {
		if err := w.PackExtensionBit(v.IsExtension); err != nil {
			return err
		}
	} else if v.IsExtension {
		return fmt.Errorf("asn1: Choice: extension variant without extension marker: %w", per.ErrEncodeFail)
	}
	if v.IsExtension {
		if err := w.PackNormallySmallNonNeg(uint64(v.Tag)); err != nil {
			return err
		}
		// Unknown future extension variants must remain skippable by a
		// decoder that doesn't know them, hence the open-type wrapper.
		return w.PackOpenType(func(inner *per.Writer) error {
			return v.Variant.Pack(inner)
		})
	}
	if err := w.PackConstrainedWholeNumber(int64(v.Tag), 0, int64(v.NofTypes-1)); err != nil {
		return err
	}
	return v.Variant.Pack(w)
}

func (v *Choice) Unpack(r *per.Reader) error {
	if v.HasExt {
		ext, err := r.UnpackExtensionBit()
		if err != nil {
			return err
		}
		v.IsExtension = ext
	}
	if v.IsExtension {
		tag, err := r.UnpackNormallySmallNonNeg()
		if err != nil {
			return err
		}
		v.Tag = int(tag)
		variant, err := v.Build(true, v.Tag)
		if err != nil {
			return err
		}
		v.Variant = variant
		return r.UnpackOpenType(func(sub *per.Reader) error {
			return v.Variant.Unpack(sub)
		})
	}
	tag, err := r.UnpackConstrainedWholeNumber(0, int64(v.NofTypes-1))
	if err != nil {
		return err
	}
	v.Tag = int(tag)
	variant, err := v.Build(false, v.Tag)
	if err != nil {
		return err
	}
	v.Variant = variant
	return v.Variant.Unpack(r)
}

// SequencePreamble packs/unpacks a SEQUENCE's optional-field presence
// bitmap and extension-group bitmap (spec.md §4.2.3 Sequence template).
// Generated message types own their field list; this just handles the
// preamble bits that precede it.
type SequencePreamble struct {
	HasExt      bool
	IsExtension bool
	Optionals   []bool // presence flag per optional field, in field order
}

func (p *SequencePreamble) Pack(w *per.Writer) error {
	if p.HasExt {
		if err := w.PackExtensionBit(p.IsExtension); err != nil {
			return err
		}
	}
	for _, present := range p.Optionals {
		bit := uint64(0)
		if present {
			bit = 1
		}
		if err := w.Pack(bit, 1); err != nil {
			return err
		}
	}
	return nil
}

func (p *SequencePreamble) Unpack(r *per.Reader) error {
	if p.HasExt {
		ext, err := r.UnpackExtensionBit()
		if err != nil {
			return err
		}
		p.IsExtension = ext
	}
	for i := range p.Optionals {
		v, err := r.Unpack(1)
		if err != nil {
			return err
		}
		p.Optionals[i] = v == 1
	}
	return nil
}
