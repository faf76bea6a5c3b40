/*
Package huml writes YAML for people. It loads documents while remembering
their comments and blank lines, and dumps values with a layout chosen for
reading rather than for the grammar's defaults:

  - well-known keys such as apiVersion, kind, metadata and name come first,
    all other keys keep their order;
  - sequences of scalars stay compact, sequences holding mappings or
    sequences give every such item its own dash line;
  - strings containing newlines are written as literal blocks, never with
    escaped "\n".

Parsing and scalar quoting are delegated to gopkg.in/yaml.v3.

Loading with formatting

LoadWithFormatting returns *Map and *Seq values that behave like ordinary
ordered containers and also carry the comments and blank lines found above
each entry:

	doc, err := huml.LoadWithFormatting(src)
	if err != nil {
		// handle error
	}
	m := doc.(*huml.Map)
	fmt.Println(m.KeyComments("image").CommentsBefore)

Dumping

Dumps accepts loaded values as well as plain Go values (maps, slices,
structs, scalars). Recorded formatting is written back only when asked
for:

	out, err := huml.Dumps(doc, huml.PreserveFormatting())

Several documents are joined with DumpsAll. DumpsKubernetesManifests also
sorts them into the order in which Kubernetes resources are installed:

	out, err := huml.DumpsKubernetesManifests(docs)

The layout decisions can be replaced with WithStyle, and the list of keys
moved to the front with PriorityKeys.
*/
package huml
