package convert

import (
	"github.com/OpenTraceLab/lib2sch/pkg/easyeda"
)

// Lib2Sch reads one library and converts every selected component into a
// materialized document with fresh identifiers. The context is returned even
// when reading fails so callers can inspect what was read.
func Lib2Sch(source, libName string, opts ...Option) (*easyeda.DocumentData, *Context, error) {
	ctx := NewContext(nil, nil)
	if _, err := ctx.ReadLibrary(libName, source); err != nil {
		return nil, ctx, err
	}

	doc := easyeda.NewDocument()
	ctx.LibrariesToSchematic(doc, opts...)
	return doc.Materialize(easyeda.NewIDAllocator()), ctx, nil
}
