// Package idlmodel models an interface-definition project, that is, modules
// of object/request/response entities and enumerations, as the intermediate
// representation consumed by a multi-target code generator.
//
// It provides:
//
//   - The schema object model (Project/Module/Entity/Enum/Field) with
//     cross-module path resolution via ElementPath
//   - A closed FieldType sum type with structural equality, including
//     list-of-list unwrapping (EqualsInList)
//   - Single-inheritance traversal (FromAncestorToMe) and generic-parameter
//     solving across an inheritance chain (GenericUnsolved)
//   - Order-preserving JSON/YAML document decoding and a drop-don't-abort
//     loading contract with a stable error model via Issues
//
// Design policy:
//   - One flat root package: the document layer, loaders, and verification
//     live beside the model so they share its unexported state.
//   - The graph is built once from a document and is read-only afterwards;
//     construction must fully complete before any query begins.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	p, iss, err := idlmodel.ParseProject(data)
//	for _, fe := range p.FlatEntities() {
//		_ = fe.Entity.FromAncestorToMe(p, collectFields)
//	}
package idlmodel
