// Package io reads and writes family files, the portable JSON form of a
// whole tree.
//
// # Format
//
//	{
//	  "version": 1,
//	  "lineage": {"rootId": "user_1a2b3c4d", "surname": "Doe"},
//	  "members": [
//	    {"id": "user_1a2b3c4d", "firstName": "You", "surname": "Doe",
//	     "birthYear": "1990", "gender": "male",
//	     "parents": ["user_5e6f7a8b"], "spouses": [], "children": []},
//	    ...
//	  ]
//	}
//
// Members carry the same fields the stores persist. A bare JSON array of
// members, as written by the file store, is accepted on import too.
//
// # Import
//
// [ReadJSON] and [ImportJSON] rebuild a [family.Registry] and reject files
// whose relation sets are not symmetric or that reference unknown members.
// When lineage names a root that is not the first member, it is moved to
// the front, since the root of a registry is its first member.
//
//	reg, err := io.ImportJSON("doe.json")
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the registry in insertion order, so an
// exported file imports back into an identical tree.
package io
