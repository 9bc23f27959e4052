// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/cellscope/adata"
	"github.com/katalvlaran/cellscope/dataio"
)

// inputs are the file flags shared by every command.
type inputs struct {
	matrix string
	obs    string
	layers []string // name=path
	tables []string // name=path
}

func (in *inputs) register(fs *pflag.FlagSet) {
	fs.StringVar(&in.matrix, "matrix", "", "primary matrix CSV (rows: observations, columns: features)")
	fs.StringVar(&in.obs, "obs", "", "observation metadata CSV")
	fs.StringArrayVar(&in.layers, "load-layer", nil, "extra layer as name=path.csv (repeatable)")
	fs.StringArrayVar(&in.tables, "load-obsm", nil, "associated table as name=path.csv (repeatable)")
}

// load assembles an AnnData from the input files.
func (in *inputs) load() (*adata.AnnData, error) {
	var ad *adata.AnnData
	if err := withFile(in.matrix, func(r io.Reader) (err error) {
		ad, err = dataio.LoadAnnData(r)
		return err
	}); err != nil {
		return nil, err
	}

	for _, arg := range in.layers {
		name, path, err := assignment(arg)
		if err != nil {
			return nil, err
		}
		if err = withFile(path, func(r io.Reader) error {
			m, _, _, err := dataio.ReadMatrix(r)
			if err != nil {
				return err
			}
			return ad.SetLayer(name, m)
		}); err != nil {
			return nil, err
		}
	}

	for _, arg := range in.tables {
		name, path, err := assignment(arg)
		if err != nil {
			return nil, err
		}
		if err = withFile(path, func(r io.Reader) error {
			m, _, _, err := dataio.ReadMatrix(r)
			if err != nil {
				return err
			}
			return ad.SetObsm(name, m)
		}); err != nil {
			return nil, err
		}
	}

	if in.obs != "" {
		if err := withFile(in.obs, func(r io.Reader) error { return dataio.ReadObs(r, ad) }); err != nil {
			return nil, err
		}
	}
	return ad, nil
}

func assignment(arg string) (name, path string, err error) {
	name, path, ok := strings.Cut(arg, "=")
	if !ok || name == "" || path == "" {
		return "", "", fmt.Errorf("%q: want name=path", arg)
	}
	return name, path, nil
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// createOr opens path for writing, or returns def when path is "" or "-".
func createOr(path string, def io.Writer, fn func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return fn(def)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
