// Package ioholder implements the DataHolder role: Mondrian
// anonymization of the plaintext table and Bloom encoding of the
// identifier columns. Both operations read the holder's plaintext
// file and write artifacts under the holder's directory.
package ioholder

import (
	"github.com/gnames/gnsys"
	"github.com/recordlink/pprl/pkg/config"
	"github.com/recordlink/pprl/pkg/lifecycle"
	"github.com/recordlink/pprl/pkg/linkage"
)

type dataHolder struct {
	cfg       *config.Config
	schema    *linkage.Schema
	holder    string
	inputPath string
	paths     linkage.Paths
}

// New creates a DataHolder for one party. The holder name ("A" or "B")
// selects the artifact directory; inputPath points at the party's
// plaintext CSV.
func New(
	cfg *config.Config,
	schema *linkage.Schema,
	holder, inputPath string,
) lifecycle.DataHolder {
	res := dataHolder{
		cfg:       cfg,
		schema:    schema,
		holder:    holder,
		inputPath: inputPath,
		paths:     linkage.Paths{WorkDir: cfg.WorkDir, K: cfg.Pipeline.K},
	}
	return &res
}

func (d *dataHolder) ensureDir() error {
	dir := d.paths.HolderDir(d.holder)
	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}
