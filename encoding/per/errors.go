// Copyright 2024 hhorai. All rights reserved.
// Use of this source code is governed by a MIT license that can be found
// in the LICENSE file.

package per

import "errors"

// ErrEncodeFail and ErrDecodeFail are the per-codec error kinds of
// spec.md §7: callers abort message assembly / drop the PDU on these,
// they are never turned into panics.
var (
	ErrEncodeFail = errors.New("per: encode failed")
	ErrDecodeFail = errors.New("per: decode failed")
)
