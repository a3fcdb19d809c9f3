// Package pexpand flattens table-reference fields: a field whose type is
// "Table N-M" is substituted, recursively, with that table's own fields at
// offsets shifted by the wrapper's position.
package pexpand

import (
	"github.com/tmultani945/log-parser-project/packet/pfield"
	"github.com/tmultani945/log-parser-project/packet/pmeta"
)

// Expand resolves a field list into placements at absolute payload offsets.
// baseOffsetBits shifts every field, which accounts for prefixes such as a
// leading version tag.
//
// Rules:
//   - A non-repeating "Table N-M" field whose table is known is replaced by
//     that table's fields, recursively, based at the wrapper's offset. The
//     wrapper itself does not appear in the output.
//   - A repeating-structure field is kept as its wrapper placement; record
//     striding happens downstream, and expanding it here would decode the
//     records twice.
//   - An unknown referenced table keeps the wrapper unchanged rather than
//     failing the decode.
//
// Output order is stable: an expanded group sits exactly where its wrapper
// sat in the input.
func Expand(fields []pmeta.FieldDefinition, tables map[string]pmeta.Table, baseOffsetBits int) []pfield.Placement {
	return expand(fields, tables, baseOffsetBits, map[string]struct{}{})
}

// visiting tracks the tables on the current recursion path. Well-formed
// metadata has no reference cycles, but malformed input must not recurse
// forever.
func expand(
	fields []pmeta.FieldDefinition,
	tables map[string]pmeta.Table,
	baseOffsetBits int,
	visiting map[string]struct{},
) []pfield.Placement {
	placements := make([]pfield.Placement, 0, len(fields))
	for i := range fields {
		def := &fields[i]
		absoluteOffsetBits := baseOffsetBits + def.TotalOffsetBits()

		if def.Kind.Tag != pmeta.KindTable || def.Repeating() {
			placements = append(placements, pfield.Place(def, absoluteOffsetBits))
			continue
		}

		refName := def.Kind.TableRef
		refTable, known := tables[refName]
		_, cyclic := visiting[refName]
		if !known || cyclic {
			placements = append(placements, pfield.Place(def, absoluteOffsetBits))
			continue
		}

		visiting[refName] = struct{}{}
		placements = append(placements, expand(refTable.Fields, tables, absoluteOffsetBits, visiting)...)
		delete(visiting, refName)
	}
	return placements
}
