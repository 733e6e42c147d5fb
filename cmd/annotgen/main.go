// Package main provides annotgen, it generates annotation registration for struct fields carrying @name doc comments.
//
// Usage:
//
//	annotgen -dir ./model -out annotation_gen.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/viant/jsonmap/internal/annotate"
)

func main() {
	dir := flag.String("dir", ".", "package directory")
	out := flag.String("out", annotate.DefaultOutput, "output file name, relative to dir")
	flag.Parse()
	defer glog.Flush()

	if err := run(*dir, *out); err != nil {
		glog.Errorf("annotgen: %v", err)
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

func run(dir, out string) error {
	pkg, err := annotate.Load(dir)
	if err != nil {
		return err
	}
	data, err := annotate.Render(pkg)
	if err != nil {
		return err
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}
	if err = os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", out, err)
	}
	for _, alias := range pkg.Aliases() {
		glog.V(1).Infof("annotgen: %s", alias)
	}
	glog.V(1).Infof("annotgen: wrote %d annotations to %s", len(pkg.Fields), out)
	return nil
}
