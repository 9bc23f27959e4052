// SPDX-License-Identifier: MIT

package dataio

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cellscope/adata"
)

// WriteUns writes the unstructured store as a YAML mapping with sorted keys.
func WriteUns(w io.Writer, ad *adata.AnnData) error {
	doc := make(map[string]any, len(ad.UnsKeys()))
	for _, k := range ad.UnsKeys() {
		v, _ := ad.Uns(k)
		doc[k] = v
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// ReadUns decodes a YAML mapping and stores every entry in ad's unstructured
// store. Sequences of strings become []string; other values keep their
// decoded YAML type.
func ReadUns(r io.Reader, ad *adata.AnnData) error {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	for k, v := range doc {
		if err := ad.SetUns(k, normalize(v)); err != nil {
			return err
		}
	}
	return nil
}

func normalize(v any) any {
	seq, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]string, len(seq))
	for i, e := range seq {
		s, ok := e.(string)
		if !ok {
			return v
		}
		out[i] = s
	}
	return out
}
