/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package primitive

import "encoding/base64"

func b64(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
