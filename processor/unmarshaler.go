// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package processor

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type unmarshaler struct {
	d   []byte
	ext string
}

func newUnmarshaler(data []byte, ext string) unmarshaler {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return unmarshaler{
		d:   data,
		ext: strings.ToLower(ext),
	}
}

func (u unmarshaler) data() []byte {
	return u.d
}

func (u unmarshaler) unmarshal(dst any) error {
	switch u.ext {
	case ".json":
		return json.Unmarshal(u.d, dst)
	case ".yaml", ".yml":
		return yaml.Unmarshal(u.d, dst)
	}
	return fmt.Errorf("unmarshaler.unmarshal: unsupported extension: %s", u.ext)
}
